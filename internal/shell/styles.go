package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// accentColor is the prompt and banner accent.
var accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}

// errColor marks error replies.
var errColor = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}

// dimColor is used for hints and echoed input.
var dimColor = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

// BannerStyle styles the welcome and farewell lines.
func BannerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColor).Bold(true)
}

// PromptStyle styles the input prompt marker.
func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColor)
}

// HintStyle styles the command hint footer.
func HintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(dimColor)
}

// EchoStyle styles previously entered command lines in the transcript.
func EchoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(dimColor)
}

// RenderReply styles a dispatcher reply: error replies are highlighted,
// everything else is rendered as-is.
func RenderReply(reply string) string {
	if strings.HasPrefix(reply, "Error: ") {
		return lipgloss.NewStyle().Foreground(errColor).Render(reply)
	}
	return reply
}
