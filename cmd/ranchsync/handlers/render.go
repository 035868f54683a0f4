package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	changedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)
)

// renderResult produces a lipgloss-styled summary of a result.
func renderResult(title string, result *reconcile.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  ranchsync " + title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  " + strings.Repeat("─", 30)))
	b.WriteString("\n")

	if result.Changed {
		writeRow(&b, "Result", changedStyle.Render("changed"))
	} else {
		writeRow(&b, "Result", okStyle.Render("unchanged"))
	}
	if result.Status != 0 {
		writeRow(&b, "Status", fmt.Sprintf("%d %s", result.Status, result.Reason))
	}

	for _, res := range summarize(result.Resource) {
		writeRow(&b, "Resource", fmt.Sprintf("%s (%s) %s", res.Name, res.ID, res.State))
	}
	b.WriteString("\n")

	return b.String()
}

func renderFailure(f Failure) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(failedStyle.Render("  ranchsync failed"))
	b.WriteString("\n")

	msg, ok := f.Msg.(string)
	if !ok {
		data, err := json.MarshalIndent(f.Msg, "  ", "  ")
		if err != nil {
			msg = fmt.Sprint(f.Msg)
		} else {
			msg = string(data)
		}
	}
	b.WriteString("  " + msg + "\n\n")

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label)), value)
}

// summarize extracts the records from a single resource or a collection body.
func summarize(body json.RawMessage) []rancher.Resource {
	if len(body) == 0 {
		return nil
	}

	var coll rancher.Collection
	if err := json.Unmarshal(body, &coll); err == nil && coll.Data != nil {
		return coll.Data
	}

	var res rancher.Resource
	if err := json.Unmarshal(body, &res); err == nil && res.ID != "" {
		return []rancher.Resource{res}
	}
	return nil
}
