package services

import (
	"fmt"
	"time"

	"github.com/galvital/YogaMoves/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// combineDatetime derives the stored RFC3339 instant from a session's date
// and wall-clock time. The pair is interpreted in the server's local zone;
// behavior across DST transitions follows whatever the zone database says.
func combineDatetime(date, clock string) (string, error) {
	t, err := time.ParseInLocation(dateLayout+"T"+timeLayout, date+"T"+clock, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid session date/time: %w", err)
	}
	return t.UTC().Format(time.RFC3339), nil
}

// sessionStarted reports whether the session's start instant has been
// reached. Exactly at the timestamp counts as started, so responses lock.
func sessionStarted(datetime string, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		// An unreadable datetime locks the session rather than leaving
		// it editable forever.
		return true
	}
	return !t.After(now)
}

// canEdit is the participant edit-window verdict for one (session, response)
// pair.
func canEdit(session *domain.ClassSession, response *domain.Response, now time.Time) bool {
	if sessionStarted(session.Datetime, now) {
		return false
	}
	return response == nil || !response.AdminOverride
}

// nowISO returns the current instant as RFC3339 UTC, the storage format for
// every timestamp in the system.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
