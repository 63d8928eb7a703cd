// Package export describes generated embed files as JSON, for build systems
// that need to know which accessors a generated unit provides.
package export

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/dusk-indust/embedgen/internal/embed"
)

// Report is the top-level JSON export structure.
type Report struct {
	Output      string        `json:"output"`
	GeneratedAt string        `json:"generatedAt"`
	Embeds      []EmbedReport `json:"embeds"`
}

// EmbedReport describes one embedded file.
type EmbedReport struct {
	Path       string `json:"path"`
	Identifier string `json:"identifier"`
	Symbol     string `json:"symbol"`
	Accessor   string `json:"accessor"`
	Size       int64  `json:"size"`
}

// BuildReport stats every input of job in order. A missing input is reported
// as an embed.Error of kind UnreadableInput.
func BuildReport(job embed.Job, generatedAt time.Time) (*Report, error) {
	report := &Report{
		Output:      job.OutputPath(),
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Embeds:      make([]EmbedReport, 0, len(job.Requests)),
	}

	for _, r := range job.Requests {
		fi, err := os.Stat(r.SourcePath)
		if err != nil {
			return nil, &embed.Error{Kind: embed.UnreadableInput, Path: r.SourcePath, Err: err}
		}
		report.Embeds = append(report.Embeds, DescribeRequest(r, fi.Size()))
	}
	return report, nil
}

// DescribeRequest returns the names derived for r together with its size.
func DescribeRequest(r embed.Request, size int64) EmbedReport {
	return EmbedReport{
		Path:       r.SourcePath,
		Identifier: r.Identifier,
		Symbol:     r.Symbol,
		Accessor:   r.Accessor(),
		Size:       size,
	}
}

// WriteJSON writes the report as indented JSON followed by a newline.
func (r *Report) WriteJSON(w io.Writer) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
