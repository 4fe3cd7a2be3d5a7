package service

import (
	"errors"
	"testing"
	"time"
)

func TestResolveDateRange(t *testing.T) {
	loc := time.FixedZone("GMT", 0)

	from, to, err := ResolveDateRange(DateRangeInput{Date: "2025-03-14"}, loc)
	if err != nil {
		t.Fatalf("resolve single day failed: %v", err)
	}
	if !from.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected from: %v", from)
	}
	if !to.Equal(time.Date(2025, 3, 14, 23, 59, 59, int(999*time.Millisecond), loc)) {
		t.Fatalf("unexpected to: %v", to)
	}

	from, to, err = ResolveDateRange(DateRangeInput{DateFrom: "2025-03-01T15:04:05Z"}, loc)
	if err != nil {
		t.Fatalf("resolve open range failed: %v", err)
	}
	if to != nil || !from.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected open range: %v %v", from, to)
	}

	from, to, err = ResolveDateRange(DateRangeInput{}, loc)
	if err != nil || from != nil || to != nil {
		t.Fatalf("empty input should yield nil bounds, got %v %v %v", from, to, err)
	}
}

func TestResolveDateRangeErrors(t *testing.T) {
	if _, _, err := ResolveDateRange(DateRangeInput{DateFrom: "14/03/2025"}, time.UTC); !errors.Is(err, ErrDateRangeInvalid) {
		t.Fatalf("expected ErrDateRangeInvalid, got %v", err)
	}
	if _, _, err := ResolveDateRange(DateRangeInput{DateFrom: "2025-03-15", DateTo: "2025-03-14"}, time.UTC); !errors.Is(err, ErrDateRangeInvalid) {
		t.Fatalf("expected inverted range to fail, got %v", err)
	}
}
