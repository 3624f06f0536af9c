package metric

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// keyRow holds the identifying columns; every other named column is a metric.
type keyRow struct {
	State string `csv:"State"`
	Year  string `csv:"Year"`
	Group string `csv:"Group,omitempty"`
}

var requiredColumns = []string{"State", "Year"}

// recordReader is satisfied by *csv.Reader and by the XLSX row adapter.
type recordReader interface {
	Read() ([]string, error)
}

func readCSVFile(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "metric: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	obs, err := ReadCSV(f)
	if err != nil {
		return nil, eris.Wrapf(err, "metric: read %s", path)
	}
	return obs, nil
}

// ReadCSV decodes observations from CSV with a header row.
func ReadCSV(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	return decodeRows(cr)
}

// decodeRows maps the key columns through csvutil and harvests the unused
// columns as metric values. Header names are trimmed before matching.
func decodeRows(r recordReader) ([]Observation, error) {
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, eris.New("metric: empty source")
		}
		return nil, eris.Wrap(err, "metric: read header")
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	dec, err := csvutil.NewDecoder(r, header...)
	if err != nil {
		return nil, eris.Wrap(err, "metric: read header")
	}

	var obs []Observation
	var skipped int
	for {
		var k keyRow
		if err := dec.Decode(&k); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "metric: decode row")
		}

		state := strings.TrimSpace(k.State)
		year, ok := parseYear(k.Year)
		if state == "" || !ok {
			skipped++
			continue
		}

		record := dec.Record()
		values := make(map[string]float64)
		for _, idx := range dec.Unused() {
			name := header[idx]
			if name == "" || strings.HasPrefix(name, "Unnamed") || idx >= len(record) {
				continue
			}
			if v, ok := parseFloat(record[idx]); ok {
				values[name] = v
			}
		}

		obs = append(obs, Observation{
			State:  state,
			Year:   year,
			Group:  strings.TrimSpace(k.Group),
			Values: values,
		})
	}

	if skipped > 0 {
		zap.L().Debug("metric: skipped rows without state or year", zap.Int("skipped", skipped))
		if len(obs) == 0 {
			return nil, eris.Errorf("metric: all %d rows lack a state or year", skipped)
		}
	}
	return obs, nil
}

func checkHeader(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("metric: missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
