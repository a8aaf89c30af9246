package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amalmed/opstrack/internal/record"
)

const (
	icsDateLayout  = "20060102"
	icsStampLayout = "20060102T150405Z"

	// icsLineOctets is the longest content line allowed before folding.
	icsLineOctets = 75
)

// WriteICS writes a calendar with one all-day event per dated task. Tasks with
// no date or an unparsable one are skipped; the number written is returned.
func WriteICS(w io.Writer, tasks []record.Task, now time.Time) (int, error) {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//opstrack//Task Export//AR",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	written := 0
	for i := range tasks {
		event, ok := icsEvent(&tasks[i], now)
		if !ok {
			continue
		}
		lines = append(lines, event...)
		written++
	}
	lines = append(lines, "END:VCALENDAR")
	for i := range lines {
		lines[i] = foldICSLine(lines[i])
	}
	lines = append(lines, "")

	if _, err := io.WriteString(w, strings.Join(lines, "\r\n")); err != nil {
		return 0, fmt.Errorf("failed to write calendar: %w", err)
	}
	return written, nil
}

func icsEvent(t *record.Task, now time.Time) ([]string, bool) {
	day, err := time.Parse(record.DateLayout, strings.TrimSpace(t.Date))
	if err != nil {
		return nil, false
	}

	title := strings.TrimSpace(t.Title)
	if sn := t.SerialNumber(); sn != "" {
		title = sn + " " + title
	}

	desc := []string{
		record.CategoryLabel(t.Category),
		t.Status.Label(),
		t.Importance.Label(),
	}
	if t.Assignee != "" {
		desc = append(desc, t.Assignee)
	}
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		desc = append(desc, notes)
	}

	return []string{
		"BEGIN:VEVENT",
		"UID:" + escapeICSText(fmt.Sprintf("task-%s@opstrack", t.ID)),
		"DTSTAMP:" + now.UTC().Format(icsStampLayout),
		"SUMMARY:" + escapeICSText(title),
		"DTSTART;VALUE=DATE:" + day.Format(icsDateLayout),
		"DTEND;VALUE=DATE:" + day.AddDate(0, 0, 1).Format(icsDateLayout),
		"DESCRIPTION:" + escapeICSText(strings.Join(desc, "\n")),
		"CATEGORIES:" + escapeICSText(t.Category),
		"END:VEVENT",
	}, true
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}

// foldICSLine splits a content line into chunks of at most 75 octets joined
// by CRLF and a space. Continuation lines count the leading space, and a
// multi-byte character is never split.
func foldICSLine(line string) string {
	if len(line) <= icsLineOctets {
		return line
	}
	var b strings.Builder
	limit := icsLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = icsLineOctets - 1
	}
	b.WriteString(line)
	return b.String()
}
