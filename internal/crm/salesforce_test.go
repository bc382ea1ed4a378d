package crm

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/model"
)

type mockClient struct {
	sObject string
	records []map[string]any
	results []Result
	err     error
}

func (m *mockClient) InsertCollection(_ context.Context, sObjectName string, records []map[string]any) ([]Result, error) {
	m.sObject = sObjectName
	m.records = records
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func TestPushLeads(t *testing.T) {
	mc := &mockClient{results: []Result{
		{ID: "sf-1", Success: true},
		{ID: "", Success: false, Errors: []string{"REQUIRED_FIELD_MISSING"}},
	}}
	p := NewPusher(mc)

	leads := []model.Lead{
		{ID: "l1", CompanyID: "c1", QualificationScore: 0.91, Rationale: "strong fit", Priority: model.PriorityHigh},
		{ID: "l2", CompanyID: "c2", QualificationScore: 0.74, Rationale: "solid", Priority: model.PriorityMedium},
	}
	companies := map[string]model.Company{
		"c1": {ID: "c1", Name: "Alpha Signs", Industry: "Signage", Website: "https://alphasigns.com", SourceEvent: "ISA Sign Expo 2026"},
		"c2": {ID: "c2", Name: "Beta Graphics"},
	}

	ok, err := p.PushLeads(context.Background(), leads, companies)
	require.NoError(t, err)
	assert.Equal(t, 1, ok)

	assert.Equal(t, "Lead", mc.sObject)
	require.Len(t, mc.records, 2)
	assert.Equal(t, "Alpha Signs", mc.records[0]["Company"])
	assert.Equal(t, "ISA Sign Expo 2026", mc.records[0]["LeadSource"])
	assert.Equal(t, "high", mc.records[0]["Rating"])
	assert.Equal(t, "Unknown", mc.records[1]["LastName"])
}

func TestPushLeadsEmpty(t *testing.T) {
	mc := &mockClient{}
	p := NewPusher(mc)

	ok, err := p.PushLeads(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, ok)
	assert.Nil(t, mc.records)
}

func TestPushLeadsClientError(t *testing.T) {
	mc := &mockClient{err: eris.New("crm: insert Lead collection")}
	p := NewPusher(mc)

	_, err := p.PushLeads(context.Background(), []model.Lead{{CompanyID: "c1"}}, nil)
	assert.Error(t, err)
}
