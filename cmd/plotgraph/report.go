package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-plotgraph/pkg/analysis"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// renderReport formats one analysis result for the terminal.
func renderReport(r *analysis.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Trace))
	b.WriteString(mutedStyle.Render("  run " + r.RunID))
	b.WriteString("\n")
	b.WriteString("Tellability: ")
	b.WriteString(scoreStyle.Render(strconv.FormatFloat(r.Score, 'f', 4, 64)))
	b.WriteString("\n")

	c := r.Counts
	stats := fmt.Sprintf(
		"Vertices:             %d\nPolyvalent vertices:  %d\nProductive conflicts: %d\nSuspense:             %d\nPlot length:          %d",
		c.Vertices, c.Polyvalent, c.ProductiveConflicts, c.Suspense, c.PlotLength)
	b.WriteString(statsBoxStyle.Render(stats))
	b.WriteString("\n")

	rows := unitRows(r)
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("No functional units found"))
		return b.String()
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Unit", "Instances").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	b.WriteString(t.String())
	return b.String()
}

// unitRows lists the units with at least one instance, in catalog order.
func unitRows(r *analysis.Result) [][]string {
	var rows [][]string
	for pair := r.UnitCounts.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == 0 {
			continue
		}
		rows = append(rows, []string{pair.Key, strconv.Itoa(pair.Value)})
	}
	return rows
}
