package harness

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/hammal/statespace/data"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Annual measurements of the Nile river height at Aswan, 1871 to 1970.
//
//go:embed testdata/nile.csv
var nileCSV []byte

const nileStartYear = 1871

// An annual sampling period. The calendar labels are January firsts, so the
// exact period varies with leap years; the nominal value is enough to mark
// the frequency as known.
const annualFreq = 365 * 24 * time.Hour

// LoadNileData returns the Nile river-height series as a one-column frame
// named "height", indexed by annual calendar timestamps and standardized to
// zero mean and unit variance.
func LoadNileData() (*data.Frame, error) {
	records, err := csv.NewReader(bytes.NewReader(nileCSV)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading nile data: %w", err)
	}
	if len(records) < 2 || records[0][0] != "x" {
		return nil, fmt.Errorf("nile data: expected a single column %q", "x")
	}

	heights := make([]float64, len(records)-1)
	for i, rec := range records[1:] {
		heights[i], err = strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("nile data row %d: %w", i, err)
		}
	}

	mean := stat.Mean(heights, nil)
	std := stat.StdDev(heights, nil)

	values := mat.NewDense(len(heights), 1, nil)
	times := make([]time.Time, len(heights))
	for i, h := range heights {
		values.Set(i, 0, (h-mean)/std)
		times[i] = time.Date(nileStartYear+i, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	return &data.Frame{
		Columns: []string{"height"},
		Values:  values,
		Index:   data.TimeIndex{Times: times, Freq: annualFreq},
	}, nil
}
