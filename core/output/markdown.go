// Package output - Markdown report
package output

import (
	"fmt"
	"io"
	"strings"
)

type markdownFormatter struct {
	opts Options
}

func (f *markdownFormatter) Format() Format { return FormatMarkdown }

func (f *markdownFormatter) Render(w io.Writer, report *Report) error {
	fillWords(report, f.opts)

	var b strings.Builder
	if report.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", report.Title)
	}

	for i := range report.Entries {
		e := &report.Entries[i]
		fmt.Fprintf(&b, "## %s\n\n", entryTitle(e))
		if e.Error != "" {
			fmt.Fprintf(&b, "> %s\n\n", e.Error)
			if !hasResult(e) {
				continue
			}
		}

		writeMarkdownTable(&b, []string{"Item", "Value"}, summaryRows(e))
		if e.Interest != nil && len(e.Interest.MonthlySchedule) > 0 {
			b.WriteString("### Monthly breakdown\n\n")
			writeMarkdownTable(&b, scheduleHeaders, scheduleRows(e.Interest))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		if i == 0 {
			sep[i] = "---"
		} else {
			sep[i] = "---:"
		}
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", "\\|")
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}
