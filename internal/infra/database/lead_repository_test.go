package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlady/crm-backend/internal/entity"
)

func leadRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "program_interest", "status", "created_at"})
}

func TestLeadGetAllOrdersByCreatedAtDesc(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := time.Now()
	older := newer.Add(-time.Hour)
	rows := leadRows(t).
		AddRow(2, "B", "b@x.com", "2", "1-Crore Club", "New", newer).
		AddRow(1, "A", "a@x.com", "1", "Leadership Masterclass", "Contacted", older)

	mock.ExpectQuery("SELECT (.+) FROM leads ORDER BY created_at DESC").WillReturnRows(rows)

	repo := NewLeadRepository(db)
	leads, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, int64(2), leads[0].ID, "most recent first")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	repo := NewLeadRepository(db)
	_, err = repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestLeadCreateFillsIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs("A", "a@x.com", "123", "1-Crore Club", "New").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))

	repo := NewLeadRepository(db)
	lead := &entity.Lead{Name: "A", Email: "a@x.com", Phone: "123", ProgramInterest: "1-Crore Club", Status: "New"}
	require.NoError(t, repo.Create(context.Background(), lead))

	assert.Equal(t, int64(7), lead.ID)
	assert.Equal(t, created, lead.CreatedAt)
}

func TestLeadUpdateSetsOnlySuppliedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	status := "Enrolled"
	rows := leadRows(t).AddRow(7, "A", "a@x.com", "123", "1-Crore Club", "Enrolled", time.Now())

	// Only the status column appears in the SET clause.
	mock.ExpectQuery(`UPDATE leads SET status = \$1 WHERE id = \$2 RETURNING`).
		WithArgs("Enrolled", int64(7)).
		WillReturnRows(rows)

	repo := NewLeadRepository(db)
	lead, err := repo.Update(context.Background(), 7, entity.LeadUpdates{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, "Enrolled", lead.Status)
	assert.Equal(t, "A", lead.Name, "untouched fields keep their value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Zero rows updated is a missing lead, not a silent success.
func TestLeadUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	status := "Enrolled"
	mock.ExpectQuery("UPDATE leads SET").WillReturnError(sql.ErrNoRows)

	repo := NewLeadRepository(db)
	_, err = repo.Update(context.Background(), 99, entity.LeadUpdates{Status: &status})

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestLeadUpdateEmptyPayloadReturnsRowUnchanged(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := leadRows(t).AddRow(7, "A", "a@x.com", "123", "1-Crore Club", "New", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").WithArgs(int64(7)).WillReturnRows(rows)

	repo := NewLeadRepository(db)
	lead, err := repo.Update(context.Background(), 7, entity.LeadUpdates{})

	require.NoError(t, err)
	assert.Equal(t, "A", lead.Name)
}

// The cascade is one transaction: applications first, then the lead.
func TestLeadDeleteCascadesInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM applications WHERE lead_id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM leads WHERE id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewLeadRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadDeleteRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM applications WHERE lead_id").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	repo := NewLeadRepository(db)
	assert.Error(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deleting an id that never existed still succeeds (204-always contract).
func TestLeadDeleteNonexistentIsNoError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM applications WHERE lead_id").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM leads WHERE id").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := NewLeadRepository(db)
	assert.NoError(t, repo.Delete(context.Background(), 99))
}
