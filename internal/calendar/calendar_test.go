package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestFormatMonthDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2021-03-05", "3/5"},
		{"2021-12-31", "12/31"},
		{"2021-01-01T23:30:00Z", "1/1"},
		{"2021-07-04T01:00:00+09:00", "7/4"},
		{"2021-07-04 18:00:00", "7/4"},
		{" 2020-02-29 ", "2/29"},
	}
	for _, tt := range tests {
		got, err := FormatMonthDay(tt.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "03/05/2021", "2021-13-01", "2021-02-30"} {
		_, err := ParseDate(in)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%q: expected *ParseError, got %v", in, err)
			continue
		}
		if pe.Input != in {
			t.Errorf("%q: error carries input %q", in, pe.Input)
		}
	}
	if _, err := FormatMonthDay("not a date"); err == nil {
		t.Error("expected error from FormatMonthDay")
	}
}

func TestEpochMillis(t *testing.T) {
	ms, err := EpochMillis("2021-03-05")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	if ms != want {
		t.Errorf("expected %d, got %d", want, ms)
	}

	ms, err = EpochMillis("2021-03-05T00:00:00+01:00")
	if err != nil {
		t.Fatal(err)
	}
	if ms != want-3600*1000 {
		t.Errorf("offset not honoured: got %d", ms)
	}
}

func TestDay(t *testing.T) {
	ts := time.Date(2024, 11, 2, 23, 0, 0, 0, time.FixedZone("X", -3*3600))
	if got := Day(ts); got != "2024-11-03" {
		t.Errorf("expected UTC day 2024-11-03, got %s", got)
	}
}
