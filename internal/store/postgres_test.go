package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/model"
)

func testTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-01-15T10:00:00Z")
	require.NoError(t, err)
	return ts
}

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgresUpdateLeadStatus(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE leads SET status`).
		WithArgs("contacted", pgxmock.AnyArg(), "lead-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateLeadStatus(context.Background(), "lead-1", model.LeadStatusContacted)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateLeadStatusNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE leads SET status`).
		WithArgs("closed", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateLeadStatus(context.Background(), "missing", model.LeadStatusClosed)
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertCompanyCaseVariant(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, created_at FROM companies WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("ACME International Signs").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow("co-1", testTime(t)))
	mock.ExpectExec(`(?s)INSERT INTO companies.*ON CONFLICT \(lower\(name\)\) DO UPDATE`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := s.UpsertCompany(context.Background(), model.Company{Name: "ACME International Signs"})
	require.NoError(t, err)
	assert.Equal(t, "co-1", got.ID)
	assert.Equal(t, testTime(t), got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetOutreachByLeadNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, lead_id, subject`).
		WithArgs("lead-1").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetOutreachByLead(context.Background(), "lead-1")
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetLead(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{
		"id", "event_id", "company_id", "stakeholder_id", "qualification_score", "rationale",
		"status", "priority", "outreach_subject", "outreach_message", "notes", "created_at", "updated_at",
	}).AddRow("lead-1", "ev-1", "co-1", "st-1", 0.85, "strong fit",
		model.LeadStatusQualified, model.PriorityHigh, "", "", "", testTime(t), testTime(t))

	mock.ExpectQuery(`SELECT id, event_id, company_id`).
		WithArgs("lead-1").
		WillReturnRows(rows)

	got, err := s.GetLead(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Equal(t, "co-1", got.CompanyID)
	assert.Equal(t, 0.85, got.QualificationScore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClear(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`TRUNCATE outreach, leads, stakeholders, companies, events`).
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))

	require.NoError(t, s.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
