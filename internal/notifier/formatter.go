package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

// Embed accent colors, keyed by trend.
const (
	ColorBullish = 5763719  // green
	ColorBearish = 15548997 // red
)

// MaxEmbeds is Discord's limit of embeds per message.
const MaxEmbeds = 10

// ReportOptions controls message framing.
type ReportOptions struct {
	Username string
	RunID    string
	Now      time.Time
	Logos    LogoLookup // nil disables icons
}

// BuildReport formats the analysis results into a single webhook message.
func BuildReport(ctx context.Context, results []*model.AnalysisResult, opts ReportOptions) *Message {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	msg := &Message{
		Username: opts.Username,
		Content:  fmt.Sprintf("📊 **Daily US Stock Report** (Timeframe: Day) | %s", now.Format("Mon Jan 2, 2006")),
		Embeds:   make([]Embed, 0, len(results)),
	}
	for _, r := range results {
		e := FormatEmbed(r)
		e.Timestamp = now.UTC().Format(time.RFC3339)
		if opts.RunID != "" {
			e.Footer = &Footer{Text: "run " + opts.RunID}
		}
		if opts.Logos != nil {
			if u, ok := opts.Logos.Lookup(ctx, r.Symbol); ok {
				e.Thumbnail = &Thumbnail{URL: u}
			}
		}
		msg.Embeds = append(msg.Embeds, e)
	}
	return msg
}

// FormatEmbed renders one symbol's block.
func FormatEmbed(r *model.AnalysisResult) Embed {
	title := fmt.Sprintf("🇺🇸 %s : $%.2f", r.Symbol, r.CurrentPrice)
	if r.PercentChange != nil {
		title += fmt.Sprintf(" (%s)", calculator.FormatPercent(*r.PercentChange))
	}

	e := Embed{
		Title: title,
		Color: TrendColor(r.Trend),
		Fields: []Field{
			{Name: "Trend", Value: fmt.Sprintf("%s %s\nSMA50: $%.2f", TrendIcon(r.Trend), r.Trend.Label(), r.SMA50), Inline: true},
			{Name: "Support", Value: formatLevels("S", r.Supports()), Inline: true},
			{Name: "Resistance", Value: formatLevels("R", r.Resistances()), Inline: true},
			{Name: "Pivot", Value: fmt.Sprintf("$%.2f", r.Levels.Pivot), Inline: true},
		},
	}
	if r.Range != nil {
		e.Fields = append(e.Fields, Field{
			Name:   fmt.Sprintf("%dD Range", r.Range.Days),
			Value:  fmt.Sprintf("High: $%.2f\nLow: $%.2f", r.Range.High, r.Range.Low),
			Inline: true,
		})
	}
	return e
}

// TrendColor picks the embed accent color.
func TrendColor(t model.Trend) int {
	if t == model.TrendBullish {
		return ColorBullish
	}
	return ColorBearish
}

// TrendIcon picks the trend marker.
func TrendIcon(t model.Trend) string {
	if t == model.TrendBullish {
		return "🟢"
	}
	return "🔴"
}

func formatLevels(prefix string, levels [3]float64) string {
	lines := make([]string, len(levels))
	for i, v := range levels {
		lines[i] = fmt.Sprintf("%s%d: $%.2f", prefix, i+1, v)
	}
	return strings.Join(lines, "\n")
}
