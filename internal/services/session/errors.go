package session

import "errors"

// Define errors
var (
	ErrNilConfig         = errors.New("config cannot be nil")
	ErrNilSnapshotRepo   = errors.New("snapshot repository cannot be nil")
	ErrNilRosterRepo     = errors.New("roster repository cannot be nil")
	ErrRosterNameMissing = errors.New("roster name is required")
)
