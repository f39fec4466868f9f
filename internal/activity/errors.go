package activity

// ActivityError is a custom error type for activity-related errors
type ActivityError string

// Error implements the error interface
func (e ActivityError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig         ActivityError = "config cannot be nil"
	ErrNilBackend        ActivityError = "backend cannot be nil"
	ErrTimerBusy         ActivityError = "timer is busy: finish or cancel the current session first"
	ErrTimerNotRunning   ActivityError = "timer is not running"
	ErrNoPendingSession  ActivityError = "no stopped session is waiting for details"
	ErrEmptyBatch        ActivityError = "no entries to create"
	ErrUploadUnavailable ActivityError = "export upload is not configured"
	ErrNegativeDuration  ActivityError = "duration cannot be negative"
)
