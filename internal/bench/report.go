package bench

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	gojson "github.com/goccy/go-json"
)

// Report formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrInvalidReportFormat is returned for an unknown report format
var ErrInvalidReportFormat = errors.New("report format must be 'table' or 'json'")

// Report writes rows to w as an aligned table or as a JSON array
func Report(w io.Writer, format string, rows []Row) error {
	switch format {
	case "", FormatTable:
		return reportTable(w, rows)
	case FormatJSON:
		enc := gojson.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return ErrInvalidReportFormat
	}
}

func reportTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "size\treps\told\tnew\tspeedup\t"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.2fx\t\n", r.Size, r.Reps, r.Old, r.New, r.Speedup); err != nil {
			return err
		}
	}
	return tw.Flush()
}
