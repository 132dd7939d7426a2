package ids

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh identifier suitable for any table's primary key.
func New() string {
	return uuid.NewString()
}

// Now returns the current UTC time, truncated to millisecond precision so
// values round-trip cleanly through JSON timestamps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FileStamp renders t as an RFC 3339 timestamp safe for use inside a
// filename. Colons and periods are replaced with dashes.
func FileStamp(t time.Time) string {
	s := t.UTC().Format(time.RFC3339)
	s = strings.ReplaceAll(s, ":", "-")
	return strings.ReplaceAll(s, ".", "-")
}
