package repositories

import "time"

// nowISO returns the current instant as RFC3339 UTC. All persisted
// timestamps use this format so string comparison orders correctly.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
