// Package export turns session records into CSV for spreadsheet tools.
//
// CSV is pure formatting. Delivering the text (a local file, an uploaded
// object) is layered on top and replaceable.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/models"
)

// DefaultTimeLayout mimics a typical locale date-time string
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

// Header is the fixed first row of every export
var Header = []string{
	"Name",
	"Description",
	"Category",
	"Start Time",
	"End Time",
	"Duration (seconds)",
	"Duration (formatted)",
	"Created At",
	"Entry ID",
}

type options struct {
	location *time.Location
	layout   string
}

// Option configures how instants are rendered
type Option func(*options)

// WithLocation renders instants in loc instead of the local zone
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithTimeLayout overrides DefaultTimeLayout
func WithTimeLayout(layout string) Option {
	return func(o *options) {
		if layout != "" {
			o.layout = layout
		}
	}
}

// CSV serializes records in the order given, header first
func CSV(records []models.Session, opts ...Option) string {
	o := options{location: time.Local, layout: DefaultTimeLayout}
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	writeRow(&b, Header)
	for i := range records {
		writeRow(&b, row(&records[i], o))
	}
	return b.String()
}

func row(s *models.Session, o options) []string {
	end := ""
	if s.EndTime != nil {
		end = o.format(*s.EndTime)
	}

	seconds := "0"
	formatted := "0s"
	if s.DurationSeconds != nil {
		seconds = strconv.FormatInt(*s.DurationSeconds, 10)
		formatted = duration.Compact(*s.DurationSeconds)
	}

	return []string{
		s.Name,
		s.DescriptionText(),
		s.CategoryText(),
		o.format(s.StartTime),
		end,
		seconds,
		formatted,
		o.format(s.CreatedAt),
		s.SessionID,
	}
}

func (o options) format(t time.Time) string {
	return t.In(o.location).Format(o.layout)
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(field))
	}
	b.WriteByte('\n')
}

// Escape quotes a field containing a comma, double quote or newline and
// doubles any inner quotes. Other fields are returned verbatim.
func Escape(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
