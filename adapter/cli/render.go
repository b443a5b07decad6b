package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/triage/internal/triage/application/services"
	"github.com/felixgeelhaar/triage/internal/triage/domain/task"
)

var (
	colorCritical = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5C5C"}
	colorHigh     = lipgloss.AdaptiveColor{Light: "#E8871E", Dark: "#FFAF5C"}
	colorMedium   = lipgloss.AdaptiveColor{Light: "#B8A000", Dark: "#E8D44D"}
	colorLow      = lipgloss.AdaptiveColor{Light: "#2F9E44", Dark: "#69DB7C"}
	colorMuted    = lipgloss.AdaptiveColor{Light: "#868E96", Dark: "#6C757D"}

	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleScore  = lipgloss.NewStyle().Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleWarn   = lipgloss.NewStyle().Foreground(colorCritical).Bold(true)

	levelStyles = map[task.PriorityLevel]lipgloss.Style{
		task.LevelCritical: lipgloss.NewStyle().Foreground(colorCritical).Bold(true),
		task.LevelHigh:     lipgloss.NewStyle().Foreground(colorHigh).Bold(true),
		task.LevelMedium:   lipgloss.NewStyle().Foreground(colorMedium),
		task.LevelLow:      lipgloss.NewStyle().Foreground(colorLow),
		task.LevelMinimal:  lipgloss.NewStyle().Foreground(colorMuted),
	}
)

func levelStyle(level task.PriorityLevel) lipgloss.Style {
	if s, ok := levelStyles[level]; ok {
		return s
	}
	return styleMuted
}

// RenderAnalysis formats a full analysis result for the terminal.
func RenderAnalysis(result *services.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(styleHeader.Render(fmt.Sprintf("Ranked tasks (%s)", result.Strategy)))
	b.WriteString("\n\n")

	for i, st := range result.Tasks {
		b.WriteString(fmt.Sprintf("%2d. %s %s %s\n",
			i+1,
			styleScore.Render(fmt.Sprintf("%6.2f", st.Score)),
			levelStyle(st.Level).Render(fmt.Sprintf("[%s]", st.Level)),
			st.Title,
		))
		b.WriteString(styleMuted.Render("    " + st.Explanation))
		b.WriteString("\n")
	}

	if len(result.CircularDependencies) > 0 {
		b.WriteString("\n")
		b.WriteString(styleWarn.Render("Circular dependencies detected:"))
		b.WriteString("\n")
		for _, e := range result.CircularDependencies {
			b.WriteString(fmt.Sprintf("  %s <-> %s\n", e.From, e.To))
		}
	}

	return b.String()
}

// RenderSuggestions formats ranked suggestions for the terminal.
func RenderSuggestions(suggestions []task.Suggestion) string {
	var b strings.Builder

	b.WriteString(styleHeader.Render("Suggested next tasks"))
	b.WriteString("\n\n")

	if len(suggestions) == 0 {
		b.WriteString(styleMuted.Render("Nothing to suggest."))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range suggestions {
		st := s.Task
		b.WriteString(fmt.Sprintf("%2d. %s %s %s\n",
			s.Rank,
			styleScore.Render(fmt.Sprintf("%6.2f", st.Score)),
			levelStyle(st.Level).Render(fmt.Sprintf("[%s]", st.Level)),
			st.Title,
		))
		b.WriteString(styleMuted.Render("    " + s.Reason))
		b.WriteString("\n")
	}

	return b.String()
}
