// Package export writes plates to interchange files: a CSV well table and
// a JSON layout file that can be opened again.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PixPMusic/platemapper/internal/plate"
)

// CompoundSeparator joins the compounds of a well in one CSV cell.
const CompoundSeparator = "; "

var csvHeader = []string{"well", "row", "column", "compounds", "color", "note"}

// WriteCSV writes one line per well in row-major order.
func WriteCSV(w io.Writer, p *plate.Plate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	var writeErr error
	p.Each(func(well plate.Well, s plate.WellState) {
		if writeErr != nil {
			return
		}
		writeErr = cw.Write([]string{
			well.String(),
			well.RowLabel(),
			strconv.Itoa(well.Col + 1),
			strings.Join(s.Compounds, CompoundSeparator),
			string(s.Color),
			s.Note,
		})
	})
	if writeErr != nil {
		return fmt.Errorf("write csv row: %w", writeErr)
	}
	cw.Flush()
	return cw.Error()
}
