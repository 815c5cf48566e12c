package domain_test

import (
	"reflect"
	"testing"
	"time"

	"tasktimer/internal/modules/timer/domain"
)

func sampleHistory() []domain.Task {
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	return []domain.Task{
		{
			Name:      "Second",
			Notes:     "",
			StartTime: start.Add(time.Hour),
			EndTime:   start.Add(time.Hour + 100*time.Second),
			TotalTime: 100,
			Sessions: []domain.Session{
				{StartTime: start.Add(time.Hour), EndTime: start.Add(time.Hour + 100*time.Second), Duration: 100},
			},
		},
		{
			Name:      "First",
			Notes:     "draft outline",
			StartTime: start,
			EndTime:   start.Add(1100 * time.Second),
			TotalTime: 1100,
			Sessions: []domain.Session{
				{StartTime: start, EndTime: start.Add(900 * time.Second), Duration: 900, Completed: true},
				{StartTime: start.Add(900 * time.Second), EndTime: start.Add(1100 * time.Second), Duration: 200},
			},
		},
	}
}

func TestHistoryRoundTripPreservesStructure(t *testing.T) {
	t.Parallel()
	history := sampleHistory()
	payload, err := domain.EncodeHistory(history)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := domain.DecodeHistory(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(history, decoded) {
		t.Fatalf("round trip changed history:\nwant %+v\ngot  %+v", history, decoded)
	}
}

func TestDecodeBrowserWrittenHistory(t *testing.T) {
	t.Parallel()
	payload := `[{"name":"Report","notes":"","startTime":"2024-05-01T08:00:00.000Z","totalTime":900,
"sessions":[{"startTime":"2024-05-01T08:00:00.000Z","endTime":"2024-05-01T08:15:00.000Z","duration":900,"completed":true}],
"endTime":"2024-05-01T08:15:03.120Z"}]`
	history, err := domain.DecodeHistory([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(history) != 1 || history[0].Name != "Report" || history[0].TotalTime != 900 {
		t.Fatalf("unexpected history %+v", history)
	}
	want := time.Date(2024, 5, 1, 8, 15, 3, 120_000_000, time.UTC)
	if !history[0].EndTime.Equal(want) {
		t.Fatalf("expected end %s, got %s", want, history[0].EndTime)
	}
}

func TestDecodeEmptyAndNull(t *testing.T) {
	t.Parallel()
	for _, payload := range []string{"", "null", "  ", "[]"} {
		history, err := domain.DecodeHistory([]byte(payload))
		if err != nil {
			t.Fatalf("decode %q: %v", payload, err)
		}
		if len(history) != 0 {
			t.Fatalf("decode %q: expected empty history, got %d", payload, len(history))
		}
	}
}

func TestDecodeCorruptFails(t *testing.T) {
	t.Parallel()
	for _, payload := range []string{"{", `{"name":"x"}`, `[{"totalTime":"lots"}]`} {
		if _, err := domain.DecodeHistory([]byte(payload)); err == nil {
			t.Fatalf("decode %q should fail", payload)
		}
	}
}

func TestEncodeNilWritesEmptyArray(t *testing.T) {
	t.Parallel()
	payload, err := domain.EncodeHistory(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("expected [], got %s", payload)
	}
}

func TestPrependKeepsInsertionOrder(t *testing.T) {
	t.Parallel()
	history := sampleHistory()
	older := history[1]
	older.Name = "Newest but backdated"
	out := domain.Prepend(history, older)
	if len(out) != 3 || out[0].Name != "Newest but backdated" || out[1].Name != "Second" || out[2].Name != "First" {
		t.Fatalf("prepend must not re-sort, got %v", []string{out[0].Name, out[1].Name, out[2].Name})
	}
	if len(history) != 2 {
		t.Fatalf("input history must not change")
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()
	cases := []struct {
		seconds int
		locale  domain.Locale
		want    string
	}{
		{0, domain.LocaleEnglish, "0s"},
		{59, domain.LocaleEnglish, "59s"},
		{100, domain.LocaleEnglish, "1m 40s"},
		{3723, domain.LocaleEnglish, "1h 2m 3s"},
		{1100, domain.LocaleTaiwan, "18分 20秒"},
		{3600, domain.LocaleTaiwan, "1時 0分 0秒"},
	}
	for _, c := range cases {
		if got := domain.FormatDuration(c.seconds, c.locale); got != c.want {
			t.Fatalf("FormatDuration(%d, %s) = %q, want %q", c.seconds, c.locale, got, c.want)
		}
	}
	if got := domain.FormatRemaining(900); got != "15:00" {
		t.Fatalf("expected 15:00, got %s", got)
	}
	if got := domain.FormatRemaining(65); got != "01:05" {
		t.Fatalf("expected 01:05, got %s", got)
	}
	if got := domain.FormatClock(time.Time{}); got != "--:--" {
		t.Fatalf("expected placeholder, got %s", got)
	}
	if got := domain.FormatClock(time.Date(2026, 1, 2, 7, 5, 0, 0, time.Local)); got != "07:05" {
		t.Fatalf("expected 07:05, got %s", got)
	}
	if got := domain.FormatDate(time.Date(2026, 1, 2, 7, 5, 0, 0, time.Local), domain.LocaleTaiwan); got != "2026/1/2" {
		t.Fatalf("expected 2026/1/2, got %s", got)
	}
}
