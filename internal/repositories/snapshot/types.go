package snapshot

import "github.com/coachbox/courtclock/internal/models"

// SaveSnapshotInput contains parameters for saving the session snapshot
type SaveSnapshotInput struct {
	// SessionID selects the stored session; empty selects the default
	// session
	SessionID string

	Snapshot *models.Snapshot
}

// GetSnapshotInput contains parameters for retrieving the session snapshot
type GetSnapshotInput struct {
	// SessionID selects the stored session; empty selects the default
	// session
	SessionID string
}
