package qualify

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/icp"
	"github.com/instalily/leadgen/internal/model"
	"github.com/instalily/leadgen/pkg/anthropic"
)

type mockClient struct {
	response string
	err      error
	calls    int
}

func (m *mockClient) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.response}},
	}, nil
}

func testScorer() *icp.Scorer {
	return icp.NewScorer(config.ICPConfig{
		TargetIndustries:  []string{"Digital Signage"},
		SecondaryKeywords: []string{"graphics", "printing", "visual", "display", "sign"},
		TechnologyFocus:   []string{"Wide Format"},
		ActivitySignals:   []string{"launch", "growth"},
	})
}

func signageCompany() model.Company {
	return model.Company{
		Name:     "Acme Signage",
		Industry: "Digital Signage",
		Size:     "Large (1000+ employees)",
		Website:  "https://acme.example.com",
	}
}

func TestQualifyBlendsModelScore(t *testing.T) {
	mc := &mockClient{response: `{"score": 0.9, "rationale": "Strong fit"}`}
	q := New(mc, testScorer(), "claude-sonnet-4-5-20250929", 512)

	got := q.Qualify(context.Background(), signageCompany())

	require.NotNil(t, got.Model)
	assert.Equal(t, 0.9, got.Model.Score)
	assert.InDelta(t, 0.4*got.Rule.Score+0.6*0.9, got.Final, 1e-9)
	assert.Equal(t, 1, mc.calls)
}

func TestQualifyFallsBackOnModelError(t *testing.T) {
	mc := &mockClient{err: eris.New("api down")}
	q := New(mc, testScorer(), "claude-sonnet-4-5-20250929", 512)

	got := q.Qualify(context.Background(), signageCompany())

	assert.Nil(t, got.Model)
	assert.Equal(t, got.Rule.Score, got.Final)
}

func TestQualifyNilClient(t *testing.T) {
	q := New(nil, testScorer(), "", 0)

	got := q.Qualify(context.Background(), signageCompany())

	assert.Nil(t, got.Model)
	assert.Equal(t, got.Rule.Score, got.Final)
}

func TestParseModelScore(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantScore float64
		wantErr   bool
	}{
		{"clean json", `{"score": 0.75, "rationale": "good"}`, 0.75, false},
		{"json with prose", "Here is my assessment:\n```json\n{\"score\": 0.6, \"rationale\": \"ok\"}\n```", 0.6, false},
		{"digit fallback", "I would rate this company 0.85 overall.", 0.85, false},
		{"out of range json", `{"score": 7.5}`, 0, true},
		{"no score", "no numbers here", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseModelScore(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
		})
	}
}

func TestIdentifyDecisionMakers(t *testing.T) {
	mc := &mockClient{response: `Here you go:
[{"title": "VP of Operations", "department": "Operations"},
 {"title": "Purchasing Manager", "department": "Procurement"}]`}
	q := New(mc, testScorer(), "claude-sonnet-4-5-20250929", 512)

	got := q.IdentifyDecisionMakers(context.Background(), signageCompany())

	require.Len(t, got, 2)
	assert.Equal(t, "VP of Operations", got[0].Title)
	assert.True(t, got[0].Pending)
	assert.Empty(t, got[0].Name)
}

func TestIdentifyDecisionMakersFailure(t *testing.T) {
	mc := &mockClient{err: eris.New("api down")}
	q := New(mc, testScorer(), "claude-sonnet-4-5-20250929", 512)

	got := q.IdentifyDecisionMakers(context.Background(), signageCompany())
	assert.Empty(t, got)
}
