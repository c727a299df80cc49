package roster

import (
	"context"

	"github.com/coachbox/courtclock/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/coachbox/courtclock/internal/repositories/roster Repository

// Repository defines the interface for the saved roster library
type Repository interface {
	// SaveRoster persists a named roster
	SaveRoster(ctx context.Context, input *SaveRosterInput) error

	// GetRoster retrieves a roster by name
	GetRoster(ctx context.Context, input *GetRosterInput) (*models.Roster, error)

	// DeleteRoster removes a roster by name
	DeleteRoster(ctx context.Context, input *DeleteRosterInput) error

	// ListRosters returns the names of all saved rosters
	ListRosters(ctx context.Context, input *ListRostersInput) (*ListRostersOutput, error)
}
