package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts the wall clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// IDGenerator produces client-side session identifiers
type IDGenerator interface {
	NewSessionID(now time.Time) string
}

// DefaultIDGenerator builds ids from a millisecond timestamp and a random suffix
type DefaultIDGenerator struct{}

func NewIDGenerator() *DefaultIDGenerator {
	return &DefaultIDGenerator{}
}

// NewSessionID returns e.g. "session_1718000000000_3f9a1c2b7"
func (d *DefaultIDGenerator) NewSessionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}
