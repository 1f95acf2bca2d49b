// Package ics writes iCalendar (RFC 5545) documents.
//
// Only the subset needed for published interview feeds is supported: a single
// VCALENDAR with VEVENT children, UTC timestamps and TEXT properties. Lines are
// always terminated with CRLF and are never folded.
package ics

import (
	"io"
	"strings"
	"time"
)

const (
	lineEnd    = "\r\n"
	timeLayout = "20060102T150405Z"
)

// Calendar is the top level VCALENDAR block.
type Calendar struct {
	ProductID   string
	Name        string
	Description string
	Events      []Event
}

// Event is a VEVENT block. Empty optional fields are omitted from the output.
type Event struct {
	UID          string
	Start        time.Time
	End          time.Time
	Stamp        time.Time
	Summary      string
	Description  string
	Location     string
	Status       string
	Transparency string
	Categories   []string
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`;`, `\;`,
	"\n", `\n`,
	"\r", "",
)

// EscapeText escapes s for use as a TEXT property value.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// UnescapeText reverses EscapeText. Unknown escape sequences are kept verbatim.
func UnescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\\', ',', ';':
			sb.WriteByte(s[i])
		case 'n', 'N':
			sb.WriteByte('\n')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// FormatTime renders t as a UTC DATE-TIME value.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Encoder writes calendars to an underlying writer.
type Encoder struct {
	w   io.Writer
	err error
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes cal as a complete document. The first write error is returned.
func (e *Encoder) Encode(cal Calendar) error {
	e.line("BEGIN", "VCALENDAR")
	e.line("VERSION", "2.0")
	e.line("PRODID", cal.ProductID)
	e.line("CALSCALE", "GREGORIAN")
	e.line("METHOD", "PUBLISH")
	if cal.Name != "" {
		e.line("X-WR-CALNAME", EscapeText(cal.Name))
	}
	if cal.Description != "" {
		e.line("X-WR-CALDESC", EscapeText(cal.Description))
	}

	for _, ev := range cal.Events {
		e.encodeEvent(ev)
	}

	e.line("END", "VCALENDAR")
	return e.err
}

func (e *Encoder) encodeEvent(ev Event) {
	e.line("BEGIN", "VEVENT")
	e.line("UID", ev.UID)
	e.line("DTSTART", FormatTime(ev.Start))
	e.line("DTEND", FormatTime(ev.End))
	e.line("DTSTAMP", FormatTime(ev.Stamp))
	e.line("SUMMARY", EscapeText(ev.Summary))
	if ev.Description != "" {
		e.line("DESCRIPTION", EscapeText(ev.Description))
	}
	if ev.Location != "" {
		e.line("LOCATION", EscapeText(ev.Location))
	}
	if ev.Status != "" {
		e.line("STATUS", ev.Status)
	}
	if ev.Transparency != "" {
		e.line("TRANSP", ev.Transparency)
	}
	if len(ev.Categories) > 0 {
		escaped := make([]string, len(ev.Categories))
		for i, c := range ev.Categories {
			escaped[i] = EscapeText(c)
		}
		e.line("CATEGORIES", strings.Join(escaped, ","))
	}
	e.line("END", "VEVENT")
}

func (e *Encoder) line(name, value string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, name+":"+value+lineEnd)
}
