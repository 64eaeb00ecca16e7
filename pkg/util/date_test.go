package util

import (
	"testing"
	"time"
)

func TestValidDateLeapDay(t *testing.T) {
	got := ValidDate(time.Date(2024, 2, 29, 15, 4, 5, 0, time.UTC))
	want := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestValidDateOrdinaryDay(t *testing.T) {
	got := ValidDate(time.Date(2024, 3, 29, 9, 0, 0, 0, time.UTC))
	want := time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSubtractWeeksLandsOnLeapDay(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	got := SubtractWeeks(now, 2)
	if got.Month() != time.February || got.Day() != 28 {
		t.Fatalf("expected Feb 28, got %v", got)
	}
}

func TestSubtractWeeksAcrossYear(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	got := SubtractWeeks(now, 29)
	want := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local)
	if DayKey(d) != "2024-3-7" {
		t.Fatalf("unexpected key %s", DayKey(d))
	}
	got, ok := ParseDayKey("2024-3-7")
	if !ok || !got.Equal(d) {
		t.Fatalf("unexpected parse %v %v", got, ok)
	}
	if _, ok := ParseDayKey("history"); ok {
		t.Fatalf("expected parse failure")
	}
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2023, 11, 20, 0, 0, 0, 0, time.Local)
	if MonthKey(d) != "2023.11" {
		t.Fatalf("unexpected key %s", MonthKey(d))
	}
	got, ok := ParseMonthKey("2023.3")
	if !ok || got.Month() != time.March || got.Year() != 2023 {
		t.Fatalf("unexpected parse %v %v", got, ok)
	}
}
