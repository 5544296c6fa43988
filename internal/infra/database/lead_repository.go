package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ironlady/crm-backend/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = "id, name, email, phone, program_interest, status, created_at"

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.ProgramInterest,
		&lead.Status,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetAll returns every lead, most recent first.
func (r *LeadRepository) GetAll(ctx context.Context) ([]*entity.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads ORDER BY created_at DESC", leadColumns)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads WHERE id = $1", leadColumns)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	return lead, err
}

// Create inserts the lead and fills in the DB-assigned id and timestamp.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, phone, program_interest, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.ProgramInterest,
		lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt)
}

// Update sets only the supplied fields. Zero rows matched means the lead
// does not exist; that is ErrNotFound, never a silent success.
func (r *LeadRepository) Update(ctx context.Context, id int64, updates entity.LeadUpdates) (*entity.Lead, error) {
	clauses := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.Name != nil {
		appendSet("name", *updates.Name)
	}
	if updates.Email != nil {
		appendSet("email", *updates.Email)
	}
	if updates.Phone != nil {
		appendSet("phone", *updates.Phone)
	}
	if updates.ProgramInterest != nil {
		appendSet("program_interest", *updates.ProgramInterest)
	}
	if updates.Status != nil {
		appendSet("status", *updates.Status)
	}

	// Empty payloads are legal: the row is returned untouched.
	if len(clauses) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE leads SET %s WHERE id = $%d RETURNING %s",
		strings.Join(clauses, ", "), len(args), leadColumns,
	)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	return lead, err
}

// Delete removes the lead and every application that references it, in one
// transaction so a crash cannot leave orphaned applications behind.
// Deleting an id that does not exist is not an error.
func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM applications WHERE lead_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM leads WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit()
}
