package activity

import (
	"time"
)

// Metadata is what the user attaches to a stopped timer session
type Metadata struct {
	Name        string
	Description string
	Category    string
}

// ManualEntry is a fully formed session entered by hand
type ManualEntry struct {
	Name        string
	Description string
	Category    string
	Start       time.Time
	End         time.Time
}

// Patch lists the session fields to change; nil means keep.
// An empty Description or Category clears it.
type Patch struct {
	Name            *string
	Description     *string
	Category        *string
	Start           *time.Time
	End             *time.Time
	DurationSeconds *int64
}

// CategoryPatch lists the category fields to change; an empty Color clears it
type CategoryPatch struct {
	Name  *string
	Color *string
}
