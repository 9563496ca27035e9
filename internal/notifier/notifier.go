// Package notifier turns analysis results into a chat message and delivers it.
package notifier

import "context"

// Sender delivers a formatted report.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// LogoLookup resolves a symbol to an icon URL. A false result is a normal
// outcome, not an error.
type LogoLookup interface {
	Lookup(ctx context.Context, symbol string) (string, bool)
}

// Message is a Discord webhook payload.
type Message struct {
	Username string  `json:"username,omitempty"`
	Content  string  `json:"content,omitempty"`
	Embeds   []Embed `json:"embeds"`
}

// Embed is one per-symbol block of the report.
type Embed struct {
	Title     string     `json:"title"`
	Color     int        `json:"color"`
	Fields    []Field    `json:"fields"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
	Footer    *Footer    `json:"footer,omitempty"`
	Timestamp string     `json:"timestamp,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

type Footer struct {
	Text string `json:"text"`
}
