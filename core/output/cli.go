// Package output - Terminal tables
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type cliFormatter struct {
	opts Options
}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) Render(w io.Writer, report *Report) error {
	fillWords(report, f.opts)

	var b strings.Builder
	if report.Title != "" {
		b.WriteString(titleStyle.Render(report.Title))
		b.WriteString("\n\n")
	}

	for i := range report.Entries {
		e := &report.Entries[i]
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(strings.ToUpper(entryTitle(e))))
		b.WriteString("\n")
		if e.Error != "" {
			b.WriteString(errorStyle.Render(e.Error))
			b.WriteString("\n")
			if !hasResult(e) {
				continue
			}
		}
		b.WriteString(kvTable(summaryRows(e)))
		b.WriteString("\n")
		if e.Interest != nil && len(e.Interest.MonthlySchedule) > 0 {
			b.WriteString(scheduleTable(scheduleRows(e.Interest)))
			b.WriteString("\n")
		}
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}

// kvTable renders two-column label/value rows
func kvTable(rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 1 {
				return numberStyle
			}
			return cellStyle
		}).
		Rows(rows...).
		Render()
}

func scheduleTable(rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(scheduleHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			if col > 0 {
				return numberStyle
			}
			return cellStyle
		}).
		Rows(rows...).
		Render()
}
