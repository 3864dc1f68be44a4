package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// maxBarWidth is the widest a chart bar will render, in cells.
const maxBarWidth = 40

// statusColors maps each bicycle status to its chart color.
var statusColors = map[model.Status]lipgloss.Color{
	model.StatusAvailable:    lipgloss.Color("#2ECC71"),
	model.StatusRented:       lipgloss.Color("#E74C3C"),
	model.StatusOutOfService: lipgloss.Color("#E67E22"),
}

// statusLabels are the display names for statuses, in render order.
var statusOrder = []model.Status{
	model.StatusAvailable,
	model.StatusRented,
	model.StatusOutOfService,
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusAvailable:
		return "Available"
	case model.StatusRented:
		return "Rented"
	case model.StatusOutOfService:
		return "Out of service"
	default:
		return string(s)
	}
}

// RenderStatusChart draws a horizontal bar chart of bicycle counts per
// status, the terminal stand-in for the shop's old status graph.
func RenderStatusChart(counts map[model.Status]int) string {
	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(ChartIcon + " Fleet status"))
	b.WriteString("\n")

	statuses := make([]model.Status, 0, len(counts))
	statuses = append(statuses, statusOrder...)
	// Unknown statuses render after the known ones.
	var extra []model.Status
	for s := range counts {
		known := false
		for _, o := range statusOrder {
			if s == o {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	statuses = append(statuses, extra...)

	for _, status := range statuses {
		count, ok := counts[status]
		if !ok {
			continue
		}
		width := 0
		if maxCount > 0 {
			width = count * maxBarWidth / maxCount
		}
		if count > 0 && width == 0 {
			width = 1
		}

		color, ok := statusColors[status]
		if !ok {
			color = lipgloss.Color("#95A5A6")
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", width))
		fmt.Fprintf(&b, "%-16s %s %d\n", statusLabel(status), bar, count)
	}

	return b.String()
}
