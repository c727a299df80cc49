package roster

import "github.com/coachbox/courtclock/internal/models"

// SaveRosterInput contains parameters for saving a roster
type SaveRosterInput struct {
	Roster *models.Roster
}

// GetRosterInput contains parameters for retrieving a roster
type GetRosterInput struct {
	Name string
}

// DeleteRosterInput contains parameters for deleting a roster
type DeleteRosterInput struct {
	Name string
}

// ListRostersInput contains parameters for listing rosters
type ListRostersInput struct{}

// ListRostersOutput contains the result of listing rosters
type ListRostersOutput struct {
	Names []string
}
