package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/model"
)

func TestDedupe(t *testing.T) {
	mentions := []model.Mention{
		{Name: "Acme Signs", SourceEvent: "Expo A"},
		{Name: "  acme signs ", SourceEvent: "Expo B"},
		{Name: "ACME SIGNS", SourceEvent: "Expo C"},
		{Name: "Other Co"},
		{Name: ""},
	}

	got := Dedupe(mentions)

	require.Len(t, got, 2)
	// First occurrence wins, including its metadata.
	assert.Equal(t, "Acme Signs", got[0].Name)
	assert.Equal(t, "Expo A", got[0].SourceEvent)
	assert.Equal(t, "Other Co", got[1].Name)
}

func TestEnrichIntelligenceTable(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	got := e.Enrich(context.Background(), model.Company{Name: "watchfire signs"})

	assert.Equal(t, "Digital Signage", got.Industry)
	assert.Equal(t, "Medium (350 employees)", got.Size)
	assert.Equal(t, "$120 million", got.Revenue)
	assert.NotEmpty(t, got.Website)
	assert.NotEmpty(t, got.LinkedInURL)
	assert.NotEmpty(t, got.Technologies)
}

func TestEnrichDoesNotOverwrite(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	got := e.Enrich(context.Background(), model.Company{
		Name:     "Watchfire Signs",
		Industry: "Custom Industry",
		Size:     "Tiny",
	})

	assert.Equal(t, "Custom Industry", got.Industry)
	assert.Equal(t, "Tiny", got.Size)
	// Empty fields still filled.
	assert.Equal(t, "$120 million", got.Revenue)
}

func TestEnrichNameHeuristics(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	tests := []struct {
		name        string
		wantSize    string
		wantRevenue string
	}{
		{"Banner Global Holdings", "Large (1000+ employees)", "$100 million+"},
		{"Signage Solutions of Ohio", "Large (1000+ employees)", "$100 million+"},
		{"Acme Display Systems", "Medium (100-1000 employees)", "$10 million+"},
		{"Tiny Sign Shop", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Enrich(context.Background(), model.Company{Name: tt.name})
			assert.Equal(t, tt.wantSize, got.Size)
			assert.Equal(t, tt.wantRevenue, got.Revenue)
		})
	}
}

func TestEnrichAddsPendingContact(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	got := e.Enrich(context.Background(), model.Company{Name: "Tiny Sign Shop"})

	require.Len(t, got.Contacts, 1)
	assert.True(t, got.Contacts[0].Pending)
	assert.Empty(t, got.Contacts[0].Name)
}

func TestEnrichWebsiteScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta name="description" content="Custom wide format printing and vehicle wraps.">
		</head><body>We specialize in wide format output and vehicle wraps.</body></html>`))
	}))
	defer srv.Close()

	e, err := New(WithWebsiteScrape(5 * time.Second))
	require.NoError(t, err)

	got := e.Enrich(context.Background(), model.Company{
		Name:    "Tiny Sign Shop",
		Website: srv.URL,
	})

	assert.Equal(t, "Custom wide format printing and vehicle wraps.", got.Description)
	assert.Contains(t, got.Technologies, "Wide Format")
	assert.Contains(t, got.Technologies, "Vehicle Wraps")
}
