package report

import (
	"fmt"
	"strings"
	"time"

	units "github.com/docker/go-units"

	"github.com/jckenny59/COS568-LI-SP25/pkg/aggregate"
)

// mdSection is one markdown table of aggregated pairs.
type mdSection struct {
	Heading string
	Records aggregate.Records
}

// renderMarkdown builds the summary.md content for a run. Sizes are
// humanized; unavailable scalars print as n/a so they cannot be read as
// zero.
func renderMarkdown(title string, variants []string, sections []mdSection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	for _, sec := range sections {
		fmt.Fprintf(&b, "## %s\n\n", sec.Heading)
		b.WriteString("| Group | Variant | Throughput (Mops/s) | Index size |\n")
		b.WriteString("|---|---|---:|---:|\n")

		for _, g := range sec.Records.Groups() {
			for _, v := range variants {
				rec, ok := sec.Records.Get(v, g)
				if !ok {
					continue
				}

				throughput := "n/a"
				if rec.Throughput.Valid {
					throughput = fmt.Sprintf("%.2f", rec.Throughput.Value)
				}

				size := "n/a"
				if rec.Size.Valid {
					size = units.BytesSize(rec.Size.Value)
				}

				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", g.String(), v, throughput, size)
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}
