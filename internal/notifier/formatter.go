package notifier

import (
	"fmt"
	"html"
	"strings"

	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/classifier"
	"IndexIndicator/internal/model"
)

// SyncLine is one symbol's sync outcome as shown in the digest.
type SyncLine struct {
	Symbol  string
	Records int
	Err     error
	Last    *model.DailyRecord // latest stored record, may be nil
}

var toneMark = map[classifier.Tone]string{
	classifier.TonePositive: "🟢",
	classifier.ToneNegative: "🔴",
	classifier.ToneNone:     "⚪",
}

// FormatSyncReport formats the post-sync digest.
func FormatSyncReport(day string, lines []SyncLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>IndexIndicator</b> | %s\n\n", label(day))

	failed := 0
	for _, l := range lines {
		if l.Err != nil {
			failed++
			fmt.Fprintf(&b, "❌ %s: %s\n", html.EscapeString(l.Symbol), html.EscapeString(l.Err.Error()))
			continue
		}
		if l.Last == nil {
			fmt.Fprintf(&b, "%s: %d records\n", html.EscapeString(l.Symbol), l.Records)
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s (%d records)\n", label(l.Last.Date), html.EscapeString(l.Symbol), l.Last.Close.StringFixed(2), l.Records)
	}
	if failed > 0 {
		fmt.Fprintf(&b, "\n%d of %d symbols failed", failed, len(lines))
	}
	return b.String()
}

// FormatFearGreed formats a Fear & Greed reading.
func FormatFearGreed(fg *model.FearGreed) string {
	c := classifier.Classify(fg.Score)
	return fmt.Sprintf("%s <b>Fear &amp; Greed</b> %s: %.0f (%s)", toneMark[c.Tone], label(fg.Date), fg.Score, html.EscapeString(fg.Rating))
}

// FormatIndicatorSummary formats indicators for one symbol.
func FormatIndicatorSummary(s *model.IndicatorSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 <b>%s</b> | %s\n\n", html.EscapeString(s.Symbol), s.Label)
	fmt.Fprintf(&b, "Close: %.2f\n", s.Close)
	if s.MA200 > 0 {
		fmt.Fprintf(&b, "MA200: %.2f (%+.1f%%)\n", s.MA200, (s.Close-s.MA200)/s.MA200*100)
	}
	fmt.Fprintf(&b, "RSI(14): %s %.0f\n", toneMark[classifier.Classify(s.RSI).Tone], s.RSI)
	fmt.Fprintf(&b, "52w: %.2f - %.2f (%.0f%%)\n", s.Low52w, s.High52w, s.Position52w*100)
	fmt.Fprintf(&b, "30d: %.2f - %.2f", s.Low30d, s.High30d)
	return b.String()
}

// label renders an ISO date as month/day, passing through anything unparsable.
func label(day string) string {
	if l, err := calendar.FormatMonthDay(day); err == nil {
		return l
	}
	return html.EscapeString(day)
}

// FormatError formats a failed command reply. subject may be empty.
func FormatError(subject string, err error) string {
	if subject == "" {
		return "❌ " + html.EscapeString(err.Error())
	}
	return fmt.Sprintf("❌ %s: %s", html.EscapeString(subject), html.EscapeString(err.Error()))
}
