package calendar

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// basicFormat UTC basic format RFC 5545 (YYYYMMDDTHHMMSSZ)
const basicFormat = "20060102T150405Z"

// maxLineOctets длина строки до переноса (RFC 5545, 3.1)
const maxLineOctets = 75

const (
	googleBaseURL  = "https://calendar.google.com/calendar/render"
	outlookBaseURL = "https://outlook.live.com/calendar/0/deeplink/compose"
)

var ErrInvalidEvent = errors.New("calendar: invalid event")

// Config параметры экспорта
type Config struct {
	ProductID       string // -//IELTS Booking Platform//EN
	UIDDomain       string // ielts-booking.com
	DefaultLocation string
}

// Event событие календаря; Start и End приводятся к UTC
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Export готовое содержимое для клиента
type Export struct {
	FileName   string
	ICS        string
	GoogleURL  string
	OutlookURL string
}

// Generator формирует iCalendar и ссылки на веб-календари
type Generator struct {
	cfg   Config
	clock clock.Clock
}

func NewGenerator(cfg Config, clk clock.Clock) *Generator {
	if cfg.ProductID == "" {
		cfg.ProductID = "-//IELTS Booking Platform//EN"
	}
	if cfg.UIDDomain == "" {
		cfg.UIDDomain = "ielts-booking.com"
	}
	return &Generator{cfg: cfg, clock: clk}
}

// EventForBooking событие экзамена по подтвержденному бронированию
func (g *Generator) EventForBooking(b *domain.Booking) (Event, error) {
	start, err := b.StartsAt()
	if err != nil {
		return Event{}, fmt.Errorf("%w: start time: %v", ErrInvalidEvent, err)
	}
	if b.DurationMinutes <= 0 {
		return Event{}, fmt.Errorf("%w: duration must be positive", ErrInvalidEvent)
	}

	optionName := string(b.ExamOption)
	if info, ok := b.ExamOption.Info(); ok {
		optionName = info.Name
	}
	location := b.Location
	if location == "" {
		location = g.cfg.DefaultLocation
	}

	return Event{
		UID:     fmt.Sprintf("%s@%s", b.Reference, g.cfg.UIDDomain),
		Summary: fmt.Sprintf("IELTS %s Exam - Level %s", optionName, b.Level),
		Description: fmt.Sprintf("IELTS Exam Booking\nReference: %s\nLocation: %s\nPlease arrive 30 minutes early.",
			b.Reference, location),
		Location: location,
		Start:    start,
		End:      start.Add(b.Duration()),
	}, nil
}

// Export ICS-файл и ссылки для бронирования
func (g *Generator) Export(b *domain.Booking) (Export, error) {
	ev, err := g.EventForBooking(b)
	if err != nil {
		return Export{}, err
	}
	ics, err := g.ICS(ev)
	if err != nil {
		return Export{}, err
	}
	return Export{
		FileName:   fmt.Sprintf("ielts-exam-%s.ics", b.Reference),
		ICS:        ics,
		GoogleURL:  GoogleURL(ev),
		OutlookURL: OutlookURL(ev),
	}, nil
}

// ICS VCALENDAR с одним VEVENT, строки разделены CRLF
func (g *Generator) ICS(ev Event) (string, error) {
	if ev.UID == "" || ev.Start.IsZero() || !ev.End.After(ev.Start) {
		return "", fmt.Errorf("%w: uid, start and end are required, end must follow start", ErrInvalidEvent)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + g.cfg.ProductID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + escapeText(ev.UID),
		"DTSTAMP:" + FormatUTC(g.clock.Now()),
		"DTSTART:" + FormatUTC(ev.Start),
		"DTEND:" + FormatUTC(ev.End),
		"SUMMARY:" + escapeText(ev.Summary),
		"DESCRIPTION:" + escapeText(ev.Description),
		"LOCATION:" + escapeText(ev.Location),
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(fold(line))
		sb.WriteString("\r\n")
	}
	return sb.String(), nil
}

// GoogleURL ссылка на создание события в Google Calendar
func GoogleURL(ev Event) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", ev.Summary)
	q.Set("dates", FormatUTC(ev.Start)+"/"+FormatUTC(ev.End))
	q.Set("details", ev.Description)
	q.Set("location", ev.Location)
	return googleBaseURL + "?" + q.Encode()
}

// OutlookURL ссылка на создание события в Outlook
func OutlookURL(ev Event) string {
	q := url.Values{}
	q.Set("subject", ev.Summary)
	q.Set("startdt", ev.Start.UTC().Format(time.RFC3339))
	q.Set("enddt", ev.End.UTC().Format(time.RFC3339))
	q.Set("body", ev.Description)
	q.Set("location", ev.Location)
	return outlookBaseURL + "?" + q.Encode()
}

// FormatUTC время в UTC basic format
func FormatUTC(t time.Time) string {
	return t.UTC().Format(basicFormat)
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// fold переносит строку длиннее 75 октетов; продолжение начинается с пробела
// Многобайтовые символы UTF-8 не разрываются
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var sb strings.Builder
	limit := maxLineOctets
	width := 0
	for _, r := range line {
		size := len(string(r))
		if width+size > limit {
			sb.WriteString("\r\n ")
			width = 0
			limit = maxLineOctets - 1
		}
		sb.WriteRune(r)
		width += size
	}
	return sb.String()
}
