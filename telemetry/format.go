package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/sie/output"
)

// slowThreshold marks a phase as slow in styled reports.
const slowThreshold = 100 * time.Millisecond

// writeTree prints root and its children:
//
//	check bokslut.se: 52ms
//	└─ loader.load bokslut.se: 48ms
//	   └─ parser.parse: 45ms (63 records)
func writeTree(w io.Writer, root *phase, styles *output.Styles) {
	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, summary(root))
	writeChildren(w, root.children, "", styles)
}

func writeChildren(w io.Writer, children []*phase, indent string, styles *output.Styles) {
	for i, p := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}

		line := summary(p)
		tree := indent + branch
		if styles != nil {
			tree = styles.Dim(tree)
			if p.duration() >= slowThreshold {
				line = styles.Warning(line)
			} else {
				line = styles.Dim(line)
			}
		}
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, p.name, line)

		writeChildren(w, p.children, indent+next, styles)
	}
}

func summary(p *phase) string {
	s := formatDuration(p.duration())
	if p.unit != "" {
		s += fmt.Sprintf(" (%d %s)", p.count, p.unit)
	}
	return s
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
