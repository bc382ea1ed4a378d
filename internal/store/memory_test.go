package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/model"
)

func TestMemoryCompanyUpsertCaseInsensitive(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	first, err := s.UpsertCompany(ctx, model.Company{Name: "Acme Signs", Industry: "Signage"})
	require.NoError(t, err)

	second, err := s.UpsertCompany(ctx, model.Company{Name: "acme signs", QualificationScore: 0.8})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	companies, err := s.ListCompanies(ctx, 0)
	require.NoError(t, err)
	require.Len(t, companies, 1)
}

func TestMemoryListLeadsSortAndPage(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	seedLeads(t, s)

	leads, total, err := s.ListLeads(ctx, LeadFilter{SortBy: SortByScore, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, leads, 1)
	assert.Equal(t, 0.91, leads[0].QualificationScore)

	byName, _, err := s.ListLeads(ctx, LeadFilter{SortBy: SortByCompanyName})
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, 0.91, byName[0].QualificationScore) // Alpha Signs first

	empty, total, err := s.ListLeads(ctx, LeadFilter{Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Empty(t, empty)
}

func TestMemoryOutreachRequiresLead(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.CreateOutreach(ctx, model.Outreach{LeadID: "missing", Subject: "s", Message: "m"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStatsAndClear(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	seedLeads(t, s)
	_, err := s.CreateEvent(ctx, model.Event{Name: "Expo"})
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalLeads)
	assert.Equal(t, 1, stats.QualifiedLeads)
	assert.Equal(t, 1, stats.TotalEvents)

	require.NoError(t, s.Clear(ctx))

	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLeads)
	assert.Zero(t, stats.TotalCompanies)
	assert.Zero(t, stats.TotalEvents)
}
