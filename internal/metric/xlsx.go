package metric

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// readXLSX decodes the first sheet of a workbook; the first row is the header.
func readXLSX(path string) ([]Observation, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "metric: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("metric: workbook %s has no sheets", path)
	}

	obs, err := decodeRows(&sheetReader{rows: f.Sheets[0].Rows})
	if err != nil {
		return nil, eris.Wrapf(err, "metric: read %s", path)
	}
	return obs, nil
}

// sheetReader adapts worksheet rows to the record reader csvutil expects.
// Rows are padded or cut to the header width because spreadsheets drop
// trailing empty cells.
type sheetReader struct {
	rows  []*xlsx.Row
	next  int
	width int
}

func (s *sheetReader) Read() ([]string, error) {
	for s.next < len(s.rows) {
		row := s.rows[s.next]
		s.next++

		cells := rowToStrings(row)
		if s.width == 0 {
			s.width = len(cells)
			return cells, nil
		}
		if isBlank(cells) {
			continue
		}

		out := make([]string, s.width)
		copy(out, cells)
		return out, nil
	}
	return nil, io.EOF
}

func rowToStrings(row *xlsx.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
