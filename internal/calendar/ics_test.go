package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		Reference:       "BK-1A2B3C4D",
		Level:           domain.LevelC1,
		ExamOption:      domain.ExamBoth,
		ExamDate:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		DurationMinutes: 180,
		Location:        "Hall A, Main Campus",
	}
}

func newTestGenerator() *Generator {
	clk := clock.NewMock()
	clk.Set(time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC))
	return NewGenerator(Config{}, clk)
}

func icsLine(t *testing.T, ics, prefix string) string {
	t.Helper()
	unfolded := strings.ReplaceAll(ics, "\r\n ", "")
	for _, line := range strings.Split(unfolded, "\r\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	t.Fatalf("line %q not found", prefix)
	return ""
}

func TestGenerator_ThreeHourExam(t *testing.T) {
	g := newTestGenerator()

	exp, err := g.Export(testBooking())
	require.NoError(t, err)

	start := icsLine(t, exp.ICS, "DTSTART:")
	end := icsLine(t, exp.ICS, "DTEND:")
	assert.Equal(t, "20250315T090000Z", start)
	assert.Equal(t, "20250315T120000Z", end)

	s, err := time.Parse(basicFormat, start)
	require.NoError(t, err)
	e, err := time.Parse(basicFormat, end)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, e.Sub(s))

	assert.Equal(t, "20250301T103000Z", icsLine(t, exp.ICS, "DTSTAMP:"))
	assert.Equal(t, "ielts-exam-BK-1A2B3C4D.ics", exp.FileName)
}

func TestGenerator_ICSStructure(t *testing.T) {
	g := newTestGenerator()

	exp, err := g.Export(testBooking())
	require.NoError(t, err)
	ics := exp.ICS

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n"))
	assert.True(t, strings.HasSuffix(ics, "END:VEVENT\r\nEND:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(ics, "\r\n", ""), "\n", "bare LF")

	assert.Equal(t, "-//IELTS Booking Platform//EN", icsLine(t, ics, "PRODID:"))
	assert.Equal(t, "BK-1A2B3C4D@ielts-booking.com", icsLine(t, ics, "UID:"))
	assert.Equal(t, "CONFIRMED", icsLine(t, ics, "STATUS:"))
	assert.Equal(t, `Hall A\, Main Campus`, icsLine(t, ics, "LOCATION:"))
	assert.Contains(t, icsLine(t, ics, "DESCRIPTION:"), `IELTS Exam Booking\nReference: BK-1A2B3C4D`)
}

func TestGenerator_InvalidBooking(t *testing.T) {
	g := newTestGenerator()

	b := testBooking()
	b.DurationMinutes = 0
	_, err := g.Export(b)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	b = testBooking()
	b.StartTime = "9am"
	_, err = g.Export(b)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestLinks(t *testing.T) {
	g := newTestGenerator()
	ev, err := g.EventForBooking(testBooking())
	require.NoError(t, err)

	google, err := url.Parse(GoogleURL(ev))
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", google.Host)
	assert.Equal(t, "TEMPLATE", google.Query().Get("action"))
	assert.Equal(t, "20250315T090000Z/20250315T120000Z", google.Query().Get("dates"))
	assert.Equal(t, "Hall A, Main Campus", google.Query().Get("location"))

	outlook, err := url.Parse(OutlookURL(ev))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15T09:00:00Z", outlook.Query().Get("startdt"))
	assert.Equal(t, "2025-03-15T12:00:00Z", outlook.Query().Get("enddt"))
	assert.Equal(t, ev.Summary, outlook.Query().Get("subject"))
}

func TestFold(t *testing.T) {
	short := "SUMMARY:short"
	assert.Equal(t, short, fold(short))

	long := "DESCRIPTION:" + strings.Repeat("é", 60)
	folded := fold(long)
	for _, part := range strings.Split(folded, "\r\n") {
		assert.LessOrEqual(t, len(part), maxLineOctets)
	}
	assert.Equal(t, long, strings.ReplaceAll(folded, "\r\n ", ""))
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `a\\b\;c\,d\ne`, escapeText("a\\b;c,d\ne"))
}
