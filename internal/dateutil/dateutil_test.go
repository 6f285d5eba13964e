package dateutil

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// Wednesday, 2025-01-15 at 14:30 local.
var fixedNow = time.Date(2025, 1, 15, 14, 30, 0, 0, time.Local)

func TestParse(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := Parse("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Key() != "2025-01-15" {
			t.Errorf("got %v, want 2025-01-15", got)
		}
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		got, err := Parse("  2024-06-01 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Key() != "2024-06-01" {
			t.Errorf("got %v, want 2024-06-01", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := Parse("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseDate_EmptyDefaultsToToday(t *testing.T) {
	got, err := ParseDate("", fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Key() != "2025-01-15" {
		t.Errorf("got %v, want 2025-01-15", got)
	}
}

func TestDate_Equality(t *testing.T) {
	a := FromTime(time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC))
	b := New(2025, time.March, 9)
	if !a.Equal(b) || a != b {
		t.Errorf("dates with the same key should be equal: %v vs %v", a, b)
	}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestDate_AddDays(t *testing.T) {
	tests := []struct {
		name string
		from Date
		n    int
		want string
	}{
		{name: "next day", from: New(2025, 1, 15), n: 1, want: "2025-01-16"},
		{name: "month boundary", from: New(2025, 1, 31), n: 1, want: "2025-02-01"},
		{name: "leap day", from: New(2024, 2, 28), n: 1, want: "2024-02-29"},
		{name: "year boundary backward", from: New(2025, 1, 1), n: -1, want: "2024-12-31"},
		{name: "zero", from: New(2025, 1, 15), n: 0, want: "2025-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.AddDays(tt.n).Key(); got != tt.want {
				t.Errorf("AddDays(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestDate_DaysUntil(t *testing.T) {
	a := New(2025, 3, 1)
	b := New(2025, 3, 31)
	if got := a.DaysUntil(b); got != 30 {
		t.Errorf("DaysUntil = %d, want 30", got)
	}
	if got := b.DaysUntil(a); got != -30 {
		t.Errorf("DaysUntil = %d, want -30", got)
	}
}

func TestDate_DaysUntil_LongDistances(t *testing.T) {
	tests := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{"four centuries", New(2000, 1, 1), New(2400, 1, 1), 146097},
		{"back to year one", New(2001, 1, 1), New(1, 1, 1), -730485},
		{"next century", New(2026, 10, 14), New(2126, 10, 14), 36524},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.DaysUntil(tt.to)
			if got != tt.want {
				t.Fatalf("DaysUntil = %d, want %d", got, tt.want)
			}
			if back := tt.from.AddDays(got); !back.Equal(tt.to) {
				t.Errorf("AddDays(%d) = %s, want %s", got, back, tt.to)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}
	data, err := json.Marshal(wrapper{Date: New(2024, 6, 1)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"date":"2024-06-01"}` {
		t.Fatalf("marshal = %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"date":"not-a-date"}`), &w); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20", fixedNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dr.Start.Key() != "2025-01-15" || dr.End.Key() != "2025-01-20" {
			t.Errorf("got %v..%v", dr.Start, dr.End)
		}
		if !dr.Contains(New(2025, 1, 17)) {
			t.Error("range should contain 2025-01-17")
		}
		if dr.Contains(New(2025, 1, 21)) {
			t.Error("range should not contain 2025-01-21")
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "", fixedNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("expected start and end to be equal, got %v and %v", dr.Start, dr.End)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange("2025-01-20", "2025-01-15", fixedNow)
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})
}

func TestSpan(t *testing.T) {
	got := Span(New(2024, 12, 30), New(2025, 1, 2))
	want := []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Key() != want[i] {
			t.Errorf("Span[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if empty := Span(New(2025, 1, 2), New(2025, 1, 1)); len(empty) != 0 {
		t.Errorf("reversed span should be empty, got %d", len(empty))
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   Date
		want string
	}{
		{in: New(2025, 1, 15), want: "2025-01-13"}, // Wednesday
		{in: New(2025, 1, 13), want: "2025-01-13"}, // Monday
		{in: New(2025, 1, 19), want: "2025-01-13"}, // Sunday
	}
	for _, tt := range tests {
		if got := WeekStart(tt.in).Key(); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseRelative(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "", want: "2025-01-15"},
		{input: "Today", want: "2025-01-15"},
		{input: "tomorrow", want: "2025-01-16"},
		{input: "yesterday", want: "2025-01-14"},
		{input: "next-week", want: "2025-01-22"},
		{input: "friday", want: "2025-01-17"},
		{input: "wednesday", want: "2025-01-22"},
		{input: "2024-06-01", want: "2024-06-01"},
		{input: "someday", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRelative(tt.input, fixedNow)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Key() != tt.want {
				t.Errorf("ParseRelative(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
