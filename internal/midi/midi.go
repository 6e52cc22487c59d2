// Package midi drives Launchpad pad controllers: it encodes pad colors for
// each supported model, decodes pad presses and mirrors a plate onto the grid.
package midi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/PixPMusic/platemapper/internal/logging"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrPortNotFound is returned when a configured port is not connected.
var ErrPortNotFound = errors.New("midi port not found")

// Manager handles MIDI device discovery and management
type Manager struct {
	mu  sync.RWMutex
	log logging.Logger

	findIn  func(name string) drivers.In
	findOut func(name string) drivers.Out
}

// NewManager creates a new MIDI manager
func NewManager(log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{log: log, findIn: findInPort, findOut: findOutPort}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

func findInPort(name string) drivers.In {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in
		}
	}
	return nil
}

func findOutPort(name string) drivers.Out {
	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out
		}
	}
	return nil
}

// PadCallback is called on the listener goroutine for every pad event.
type PadCallback func(row, col int, isNoteOn bool)

// Port names one Launchpad connection.
type Port struct {
	Name    string
	InPort  string
	OutPort string
	Type    DeviceType
}

// Attach opens the ports of a Launchpad, puts it into programmer mode and
// starts listening. Either port may be empty: a surface without an output
// only reports presses, one without an input only shows frames.
func (m *Manager) Attach(port Port, onPad PadCallback) (*Surface, error) {
	dev, err := GetDevice(port.Type)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var in drivers.In
	if port.InPort != "" {
		if in = m.findIn(port.InPort); in == nil {
			return nil, fmt.Errorf("input %q: %w", port.InPort, ErrPortNotFound)
		}
	}

	var send func(midi.Message) error
	if port.OutPort != "" {
		out := m.findOut(port.OutPort)
		if out == nil {
			return nil, fmt.Errorf("output %q: %w", port.OutPort, ErrPortNotFound)
		}
		send, err = midi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("failed to create sender: %w", err)
		}
	}

	s := newSurface(port.Name, dev, send, m.log.With(logging.String("device", port.Name)))
	if err := s.activate(); err != nil {
		return nil, err
	}

	if in != nil {
		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			s.handle(msg, onPad)
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to start listening: %w", err)
		}
		s.stop = stop
	}

	m.log.Info("launchpad attached",
		logging.String("device", port.Name),
		logging.String("type", string(port.Type)),
		logging.String("in", port.InPort),
		logging.String("out", port.OutPort))
	return s, nil
}

// Surface is an attached Launchpad.
type Surface struct {
	mu   sync.Mutex
	name string
	dev  Device
	send func(midi.Message) error
	stop func()
	last *Frame
	log  logging.Logger
}

func newSurface(name string, dev Device, send func(midi.Message) error, log logging.Logger) *Surface {
	return &Surface{name: name, dev: dev, send: send, log: log}
}

// Name is the configured device name.
func (s *Surface) Name() string { return s.name }

func (s *Surface) activate() error {
	if s.send == nil {
		return nil
	}
	if err := s.dev.ActivateProgrammerMode(s.send); err != nil {
		return err
	}
	return s.dev.ClearAllPads(s.send)
}

func (s *Surface) handle(msg midi.Message, onPad PadCallback) {
	row, col, on, ok := s.dev.HandleMessage(msg)
	if !ok {
		return
	}
	s.log.Debug("pad event", logging.Int("row", row), logging.Int("col", col), logging.Bool("on", on))
	if onPad != nil {
		onPad(row, col, on)
	}
}

// Show lights the pads. Devices that cannot write a whole frame at once only
// receive the pads that changed since the previous frame.
func (s *Surface) Show(frame Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.send == nil {
		return nil
	}
	if fw, ok := s.dev.(FrameWriter); ok {
		if s.last != nil && *s.last == frame {
			return nil
		}
		if err := fw.WriteFrame(s.send, frame); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		s.last = &frame
		return nil
	}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if s.last != nil && s.last[row][col] == frame[row][col] {
				continue
			}
			if err := s.dev.SetPadColor(s.send, row, col, frame[row][col]); err != nil {
				// Force a full resend next time.
				s.last = nil
				return fmt.Errorf("%s: %w", s.name, err)
			}
		}
	}
	s.last = &frame
	return nil
}

// Close stops listening and turns every pad off.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.last = nil
	if s.send == nil {
		return nil
	}
	return s.dev.ClearAllPads(s.send)
}
