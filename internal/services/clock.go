package services

import "time"

// nowStamp is the single timestamp format persisted across tables.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
