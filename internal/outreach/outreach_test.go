package outreach

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/instalily/leadgen/internal/config"
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

func testConfig() config.OutreachConfig {
	return config.OutreachConfig{DelaySecs: 1, MinLength: 50, MaxLength: 2000, FollowUps: 2}
}

const goodResponse = `{
	"subject": "Materials for Acme Signage's wide format work",
	"message": "Hi, I noticed Acme Signage exhibited at PRINTING United and wanted to reach out about supplying your wide format production. We stock the films and substrates your team already uses and can usually ship same day. Would a short call next week work?",
	"follow_ups": [
		{"timing": "1 week after initial", "message": "Following up on my note to Acme Signage."},
		{"timing": "2 weeks after initial", "message": "Last note from me, Acme Signage."}
	],
	"personalization": ["exhibited at PRINTING United", "wide format production"]
}`

func acme() model.Company {
	return model.Company{Name: "Acme Signage", Industry: "Digital Signage", SourceEvent: "PRINTING United Expo"}
}

func TestGenerate(t *testing.T) {
	mc := &mockClient{response: goodResponse}
	g := New(mc, "claude-sonnet-4-5-20250929", 512, testConfig())

	got := g.Generate(context.Background(), acme(), model.Stakeholder{Title: "VP of Operations"})

	require.NotNil(t, got)
	assert.False(t, got.Fallback)
	assert.Contains(t, got.Subject, "Acme Signage")
	require.Len(t, got.FollowUps, 2)
	assert.Equal(t, 1, got.FollowUps[0].Sequence)
	assert.Equal(t, "1 week after initial", got.FollowUps[0].Timing)
	assert.Equal(t, 2, got.FollowUps[1].Sequence)
	assert.NotEmpty(t, got.Personalization)
}

func TestGenerateFallbackOnError(t *testing.T) {
	mc := &mockClient{err: eris.New("api down")}
	g := New(mc, "claude-sonnet-4-5-20250929", 512, testConfig())

	got := g.Generate(context.Background(), acme(), model.Stakeholder{Name: "Jordan Lee"})

	require.NotNil(t, got)
	assert.True(t, got.Fallback)
	assert.Contains(t, got.Message, "Jordan Lee")
	assert.Contains(t, got.Message, "Acme Signage")
	require.Len(t, got.FollowUps, 2)
}

func TestGenerateFallbackOnGarbage(t *testing.T) {
	mc := &mockClient{response: "sorry, I cannot help with that"}
	g := New(mc, "claude-sonnet-4-5-20250929", 512, testConfig())

	got := g.Generate(context.Background(), acme(), model.Stakeholder{})

	require.NotNil(t, got)
	assert.True(t, got.Fallback)
}

func TestGeneratePadsMissingFollowUps(t *testing.T) {
	mc := &mockClient{response: `{"subject": "Hello Acme Signage", "message": "A message about Acme Signage that is long enough to pass validation checks easily."}`}
	g := New(mc, "claude-sonnet-4-5-20250929", 512, testConfig())

	got := g.Generate(context.Background(), acme(), model.Stakeholder{})

	require.Len(t, got.FollowUps, 2)
	assert.Equal(t, "1 week after initial", got.FollowUps[0].Timing)
	assert.Equal(t, "2 weeks after initial", got.FollowUps[1].Timing)
}

func TestGenerateBulk(t *testing.T) {
	mc := &mockClient{response: goodResponse}
	g := New(mc, "claude-sonnet-4-5-20250929", 512, config.OutreachConfig{DelaySecs: 1, FollowUps: 2})
	// Shrink the pacing interval so the test runs fast.
	g.limiter.SetLimit(1000)

	items := []BulkItem{
		{LeadID: "lead-1", Company: acme()},
		{LeadID: "lead-2", Company: model.Company{Name: "Other Co"}},
	}

	got := g.GenerateBulk(context.Background(), items)

	require.Len(t, got, 2)
	assert.Equal(t, "lead-1", got["lead-1"].LeadID)
	assert.Equal(t, 2, mc.calls)
}

func TestGenerateBulkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mc := &mockClient{response: goodResponse}
	g := New(mc, "claude-sonnet-4-5-20250929", 512, testConfig())

	got := g.GenerateBulk(ctx, []BulkItem{{LeadID: "lead-1", Company: acme()}})
	assert.Empty(t, got)
}

func TestValidate(t *testing.T) {
	g := New(nil, "", 0, testConfig())

	t.Run("clean message", func(t *testing.T) {
		issues := g.Validate(&model.Outreach{
			Message: "A perfectly reasonable note about Acme Signage and their wide format production needs.",
		}, "Acme Signage")
		assert.Empty(t, issues)
	})

	t.Run("flags problems", func(t *testing.T) {
		issues := g.Validate(&model.Outreach{
			Message: "Act now! Click here!",
		}, "Acme Signage")
		assert.Len(t, issues, 4) // too short, two spam triggers, no company mention
	})
}

func TestGenerateBulkPacing(t *testing.T) {
	mc := &mockClient{response: goodResponse}
	g := New(mc, "claude-sonnet-4-5-20250929", 512, config.OutreachConfig{DelaySecs: 1, FollowUps: 2})
	g.limiter.SetLimit(rate.Every(50 * time.Millisecond))

	start := time.Now()
	g.GenerateBulk(context.Background(), []BulkItem{
		{LeadID: "a", Company: acme()},
		{LeadID: "b", Company: acme()},
	})

	// Second request waits for the limiter interval.
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
