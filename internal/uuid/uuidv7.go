// Package uuid generates the time-ordered identifiers used as primary keys.
package uuid

import googleuuid "github.com/google/uuid"

// New generates a UUIDv7. The leading 48 bits carry a millisecond timestamp,
// so ids created in sequence sort in creation order, which keeps btree
// inserts append-mostly.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// The only failure mode is a broken random source. Fall back to v4
		// rather than failing the write.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID in any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
