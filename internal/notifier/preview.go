package notifier

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			MarginBottom(1)

	embedStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(60)

	fieldNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6B7280"))
)

// PreviewSender renders messages to a terminal instead of posting them.
type PreviewSender struct {
	Out io.Writer
}

func (p *PreviewSender) Send(_ context.Context, msg *Message) error {
	var b strings.Builder
	if msg.Username != "" {
		b.WriteString(fieldNameStyle.Render(msg.Username))
		b.WriteString("\n")
	}
	b.WriteString(headerStyle.Render(msg.Content))
	b.WriteString("\n")
	for _, e := range msg.Embeds {
		b.WriteString(RenderEmbed(e))
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.Out, b.String())
	return err
}

// RenderEmbed draws one embed as a bordered terminal block.
func RenderEmbed(e Embed) string {
	color := lipgloss.Color(fmt.Sprintf("#%06X", e.Color))
	var body strings.Builder
	body.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(e.Title))
	for _, f := range e.Fields {
		body.WriteString("\n")
		body.WriteString(fieldNameStyle.Render(f.Name))
		body.WriteString("\n")
		body.WriteString(f.Value)
	}
	if e.Thumbnail != nil {
		body.WriteString("\n")
		body.WriteString(fieldNameStyle.Render("icon: " + e.Thumbnail.URL))
	}
	return embedStyle.BorderForeground(color).Render(body.String())
}
