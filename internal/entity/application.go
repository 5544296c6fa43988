package entity

import (
	"context"
	"time"
)

var ApplicationStatuses = []string{
	"Under Review",
	"Interview Scheduled",
	"Accepted",
	"Rejected",
}

const DefaultApplicationStatus = "Under Review"

// Application is a lead's submission for a specific program. Lead is filled
// by the repository on reads (left-join); nil when the leadId dangles.
type Application struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"leadId"`
	Program   string    `json:"program"`
	Status    string    `json:"status"` // Under Review, Interview Scheduled, Accepted, Rejected
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	Lead *Lead `json:"lead,omitempty"`
}

func IsValidApplicationStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type ApplicationUpdates struct {
	LeadID  *int64
	Program *string
	Status  *string
	Notes   *string
}

type ApplicationRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*Application, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	Create(ctx context.Context, app *Application) error
	Update(ctx context.Context, id int64, updates ApplicationUpdates) (*Application, error)
	Delete(ctx context.Context, id int64) error
}
