package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ironlady/crm-backend/internal/entity"
)

type ApplicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// Reads left-join the owning lead so orphaned applications (dangling
// lead_id) still come back, just without a lead attached.
const applicationJoinQuery = `
	SELECT
		a.id, a.lead_id, a.program, a.status, a.notes, a.created_at,
		l.id, l.name, l.email, l.phone, l.program_interest, l.status, l.created_at
	FROM applications a
	LEFT JOIN leads l ON l.id = a.lead_id
`

func scanApplicationWithLead(row interface{ Scan(...any) error }) (*entity.Application, error) {
	var app entity.Application
	var notes sql.NullString

	var leadID sql.NullInt64
	var leadName, leadEmail, leadPhone, leadProgram, leadStatus sql.NullString
	var leadCreatedAt sql.NullTime

	err := row.Scan(
		&app.ID, &app.LeadID, &app.Program, &app.Status, &notes, &app.CreatedAt,
		&leadID, &leadName, &leadEmail, &leadPhone, &leadProgram, &leadStatus, &leadCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Notes = notes.String

	if leadID.Valid {
		app.Lead = &entity.Lead{
			ID:              leadID.Int64,
			Name:            leadName.String,
			Email:           leadEmail.String,
			Phone:           leadPhone.String,
			ProgramInterest: leadProgram.String,
			Status:          leadStatus.String,
			CreatedAt:       leadCreatedAt.Time,
		}
	}

	return &app, nil
}

func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*entity.Application, error) {
	query := applicationJoinQuery + " ORDER BY a.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []*entity.Application{}
	for rows.Next() {
		app, err := scanApplicationWithLead(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*entity.Application, error) {
	query := applicationJoinQuery + " WHERE a.id = $1"

	app, err := scanApplicationWithLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	return app, err
}

func (r *ApplicationRepository) Create(ctx context.Context, app *entity.Application) error {
	query := `
		INSERT INTO applications (lead_id, program, status, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(ctx, query,
		app.LeadID,
		app.Program,
		app.Status,
		nullString(app.Notes),
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *ApplicationRepository) Update(ctx context.Context, id int64, updates entity.ApplicationUpdates) (*entity.Application, error) {
	clauses := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.LeadID != nil {
		appendSet("lead_id", *updates.LeadID)
	}
	if updates.Program != nil {
		appendSet("program", *updates.Program)
	}
	if updates.Status != nil {
		appendSet("status", *updates.Status)
	}
	if updates.Notes != nil {
		appendSet("notes", nullString(*updates.Notes))
	}

	if len(clauses) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE applications SET %s WHERE id = $%d RETURNING id, lead_id, program, status, notes, created_at",
		strings.Join(clauses, ", "), len(args),
	)

	var app entity.Application
	var notes sql.NullString
	var createdAt time.Time
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&app.ID, &app.LeadID, &app.Program, &app.Status, &notes, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	app.Notes = notes.String
	app.CreatedAt = createdAt
	return &app, nil
}

// Delete of a missing id is a no-op, matching the 204-always contract.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM applications WHERE id = $1", id)
	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
