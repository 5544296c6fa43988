package entity

import (
	"context"
	"time"
)

// Fixed program catalog offered by the business. Status/program values are
// validated at the contract layer only; the storage layer trusts its input.
var Programs = []string{
	"Leadership Masterclass",
	"Leadership Essentials Program (LEP)",
	"Transition to Leadership Bootcamp",
	"1-Crore Club",
	"100 Board Members Program",
	"Master Business Warfare (MBW)",
	"Corporate Custom Program",
}

var LeadStatuses = []string{
	"New",
	"Contacted",
	"Interested",
	"Enrolled",
	"Closed",
}

const DefaultLeadStatus = "New"

type Lead struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ProgramInterest string    `json:"programInterest"`
	Status          string    `json:"status"` // New, Contacted, Interested, Enrolled, Closed
	CreatedAt       time.Time `json:"createdAt"`
}

func IsValidProgram(p string) bool {
	for _, v := range Programs {
		if v == p {
			return true
		}
	}
	return false
}

func IsValidLeadStatus(s string) bool {
	for _, v := range LeadStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type LeadUpdates struct {
	Name            *string
	Email           *string
	Phone           *string
	ProgramInterest *string
	Status          *string
}

type LeadRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*Lead, error)
	GetByID(ctx context.Context, id int64) (*Lead, error)
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, id int64, updates LeadUpdates) (*Lead, error)
	Delete(ctx context.Context, id int64) error
}
