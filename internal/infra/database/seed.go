package database

import (
	"context"

	"github.com/ironlady/crm-backend/internal/entity"
)

// Seed inserts sample data on an empty database so the dashboard is not
// blank on first boot. Does nothing once any lead exists.
func Seed(ctx context.Context, leads *LeadRepository, apps *ApplicationRepository, chat *ChatRepository) error {
	existing, err := leads.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	lead1 := &entity.Lead{
		Name:            "Priya Sharma",
		Email:           "priya@example.com",
		Phone:           "+91 98765 43210",
		ProgramInterest: "Leadership Masterclass",
		Status:          "Contacted",
	}
	if err := leads.Create(ctx, lead1); err != nil {
		return err
	}

	lead2 := &entity.Lead{
		Name:            "Anjali Gupta",
		Email:           "anjali@example.com",
		Phone:           "+91 98765 43211",
		ProgramInterest: "1-Crore Club",
		Status:          "Interested",
	}
	if err := leads.Create(ctx, lead2); err != nil {
		return err
	}

	app := &entity.Application{
		LeadID:  lead2.ID,
		Program: "1-Crore Club",
		Status:  "Interview Scheduled",
		Notes:   "High potential candidate, current VP at Tech Corp.",
	}
	if err := apps.Create(ctx, app); err != nil {
		return err
	}

	_, err = chat.CreateConversation(ctx, "Iron Lady Program Advisor")
	return err
}
