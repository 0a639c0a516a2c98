package constants

// Status is the canonical lifecycle status for rows in pick_entries.
type Status string

// Stable values (store these exact strings in DB).
const (
	StatusPending Status = "PENDING" // awaiting pick
	StatusPicked  Status = "PICKED"  // fulfilled
	StatusSkipped Status = "SKIPPED" // operator skipped the entry
)
