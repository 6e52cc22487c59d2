package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func newBufferedLogger() (Logger, *zaptest.Buffer) {
	buf := &zaptest.Buffer{}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, buf, zapcore.DebugLevel)
	return FromZap(zap.New(core)), buf
}

func TestNew(t *testing.T) {
	for _, cfg := range []Config{{}, {Level: "debug", Format: "json"}, {Level: "WARN", Format: "console"}} {
		l, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}

	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestFieldsAreEncoded(t *testing.T) {
	l, buf := newBufferedLogger()
	l.Named("window").With(String("format", "96-well")).Info("applied",
		Int("wells", 24), Bool("cleared", false), Err(errors.New("boom")), Any("rows", []string{"A", "C"}))

	line := buf.Stripped()
	assert.Contains(t, line, `"logger":"window"`)
	assert.Contains(t, line, `"format":"96-well"`)
	assert.Contains(t, line, `"wells":24`)
	assert.Contains(t, line, `"cleared":false`)
	assert.Contains(t, line, `"error":"boom"`)
	assert.Contains(t, line, `"rows":["A","C"]`)
}

func TestLevels(t *testing.T) {
	l, buf := newBufferedLogger()
	l.Debug("d")
	l.Warn("w")
	l.Error("e")
	assert.Len(t, buf.Lines(), 3)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored")
	assert.NoError(t, l.Sync())
}
