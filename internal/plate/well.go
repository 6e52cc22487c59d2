package plate

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidWell is returned when a well identifier cannot be parsed.
var ErrInvalidWell = errors.New("invalid well")

// Well addresses one position on a plate. Row and Col are zero-based;
// the identifier form is the row letter followed by the 1-based column ("B3").
type Well struct {
	Row int
	Col int
}

func (w Well) String() string {
	return rowLetter(w.Row) + strconv.Itoa(w.Col+1)
}

// RowLabel returns the row letter of the well.
func (w Well) RowLabel() string {
	return rowLetter(w.Row)
}

// ParseWell parses an identifier such as "A1" or "H12".
func ParseWell(id string) (Well, error) {
	if len(id) < 2 {
		return Well{}, fmt.Errorf("%w: %q", ErrInvalidWell, id)
	}
	row, ok := RowIndex(id[:1])
	if !ok {
		return Well{}, fmt.Errorf("%w: %q", ErrInvalidWell, id)
	}
	col, err := strconv.Atoi(id[1:])
	if err != nil || col < 1 || id[1] == '+' {
		return Well{}, fmt.Errorf("%w: %q", ErrInvalidWell, id)
	}
	return Well{Row: row, Col: col - 1}, nil
}

// RowIndex converts a single upper-case row letter to its zero-based index.
func RowIndex(label string) (int, bool) {
	if len(label) != 1 || label[0] < 'A' || label[0] > 'Z' {
		return 0, false
	}
	return int(label[0] - 'A'), true
}

func rowLetter(i int) string {
	if i < 0 || i > 25 {
		return "?"
	}
	return string(rune('A' + i))
}
