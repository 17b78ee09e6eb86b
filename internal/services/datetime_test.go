package services

import (
	"testing"
	"time"

	"github.com/galvital/YogaMoves/domain"
)

func TestCombineDatetime(t *testing.T) {
	t.Run("derives an RFC3339 UTC instant", func(t *testing.T) {
		got, err := combineDatetime("2026-06-01", "09:00")
		if err != nil {
			t.Fatalf("combineDatetime returned error: %v", err)
		}
		parsed, err := time.Parse(time.RFC3339, got)
		if err != nil {
			t.Fatalf("result is not RFC3339: %q", got)
		}
		want := time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)
		if !parsed.Equal(want) {
			t.Errorf("expected %v, got %v", want, parsed)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"2026-13-01", "09:00"},
			{"2026-06-01", "25:00"},
			{"tomorrow", "09:00"},
			{"", ""},
		} {
			if _, err := combineDatetime(pair[0], pair[1]); err == nil {
				t.Errorf("expected error for %q %q", pair[0], pair[1])
			}
		}
	})
}

func TestSessionStarted(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		datetime string
		want     bool
	}{
		{"future", "2026-06-01T09:00:01Z", false},
		{"exactly at the timestamp counts as started", "2026-06-01T09:00:00Z", true},
		{"past", "2026-06-01T08:59:59Z", true},
		{"unparseable locks", "not-a-time", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessionStarted(tt.datetime, now); got != tt.want {
				t.Errorf("sessionStarted(%q) = %v, want %v", tt.datetime, got, tt.want)
			}
		})
	}
}

func TestCanEdit(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	future := &domain.ClassSession{Datetime: "2026-06-02T09:00:00Z"}
	past := &domain.ClassSession{Datetime: "2026-05-31T09:00:00Z"}

	if !canEdit(future, nil, now) {
		t.Error("future session with no response must be editable")
	}
	if !canEdit(future, &domain.Response{}, now) {
		t.Error("future session with an unlocked response must be editable")
	}
	if canEdit(future, &domain.Response{AdminOverride: true}, now) {
		t.Error("admin-locked pair must not be editable")
	}
	if canEdit(past, nil, now) {
		t.Error("started session must not be editable")
	}
}
