package search

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"reserve-sim/internal/model"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"candidateId",
	"hour",
	"Cb",
	"dtb",
	"dte",
	"epsilon",
	"gain",
	"P0",
}

// WriteCSV writes one row per (candidate, hour) in candidate order, then hour
// order within the candidate.
func WriteCSV(out io.Writer, candidates []model.Candidate) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range candidates {
		for _, p := range c.Params {
			row := []string{
				c.ID,
				strconv.Itoa(p.Hour),
				fmtMoney(p.Cb),
				strconv.Itoa(p.DTB),
				strconv.Itoa(p.DTE),
				strconv.FormatFloat(p.Epsilon, 'f', -1, 64),
				fmtMoney(p.Gain),
				fmtMoney(p.P0),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// ToCSV renders candidates as CSV text.
func ToCSV(candidates []model.Candidate) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, candidates); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteCSVFile writes the export to path, creating parent directories.
func WriteCSVFile(path string, candidates []model.Candidate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, candidates)
}

// ExportFilename is the download name for an export produced on day.
func ExportFilename(day time.Time) string {
	return "top-candidates-" + day.Format("2006-01-02") + ".csv"
}

func fmtMoney(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}
