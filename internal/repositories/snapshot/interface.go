package snapshot

import (
	"context"

	"github.com/coachbox/courtclock/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/coachbox/courtclock/internal/repositories/snapshot Repository

// Repository defines the interface for session snapshot persistence
type Repository interface {
	// SaveSnapshot persists the session snapshot
	SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error

	// GetSnapshot retrieves the previously stored session snapshot
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.Snapshot, error)
}
