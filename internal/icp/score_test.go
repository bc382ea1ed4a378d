package icp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
)

func testCriteria() config.ICPConfig {
	return config.ICPConfig{
		TargetIndustries: []string{
			"Digital Signage", "Large Format Printing", "Visual Communications",
			"Sign Manufacturing", "Graphics and Printing",
		},
		SecondaryKeywords: []string{"graphics", "printing", "visual", "display", "sign"},
		TechnologyFocus:   []string{"Digital Printing", "LED Displays", "Wide Format", "Vehicle Wraps", "Software"},
		ActivitySignals:   []string{"launch", "new", "expand", "partnership", "investment", "growth"},
	}
}

func TestScoreEmptyCompany(t *testing.T) {
	s := NewScorer(testCriteria())

	got := s.Score(model.Company{Name: "Mystery Co"})

	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, "Limited qualification data available", got.Rationale)
}

func TestScoreIndustry(t *testing.T) {
	s := NewScorer(testCriteria())

	tests := []struct {
		name     string
		industry string
		want     float64
	}{
		{"target match", "Digital Signage", 0.25},
		{"target match case insensitive", "digital signage solutions", 0.25},
		{"secondary keyword", "Commercial Printing Services", 0.15},
		{"no match", "Food Service", 0.0},
		{"empty", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(model.Company{Name: "X", Industry: tt.industry})
			assert.InDelta(t, tt.want, got.Score, 1e-9)
		})
	}
}

func TestScoreSizeAndRevenue(t *testing.T) {
	s := NewScorer(testCriteria())

	tests := []struct {
		name    string
		size    string
		revenue string
		want    float64
	}{
		{"large size", "Large (1000+ employees)", "", 0.20},
		{"medium size", "Medium (200 employees)", "", 0.15},
		{"headcount hint", "500+ employees", "", 0.12},
		{"billion revenue", "", "$1.2 billion", 0.20},
		{"billion abbreviated", "", "$2B", 0.20},
		{"high millions", "", "$150 million", 0.18},
		{"high millions abbreviated", "", "$150M annually", 0.18},
		{"mid millions", "", "$75 million", 0.15},
		{"mid millions abbreviated", "", "$50M", 0.15},
		{"low millions", "", "$25 million", 0.12},
		{"low millions abbreviated", "", "$25M", 0.12},
		{"tiny millions", "", "$5 million", 0.0},
		{"no dollar sign", "", "150 million", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(model.Company{Name: "X", Size: tt.size, Revenue: tt.revenue})
			assert.InDelta(t, tt.want, got.Score, 1e-9)
		})
	}
}

func TestScoreTechnologiesCapped(t *testing.T) {
	s := NewScorer(testCriteria())

	got := s.Score(model.Company{
		Name: "X",
		Technologies: []string{
			"Digital Printing", "LED Displays", "Wide Format", "Vehicle Wraps", "Software",
		},
	})

	// 5 matches at 0.05 each would be 0.25; capped at 0.15.
	assert.InDelta(t, 0.15, got.Score, 1e-9)
}

func TestScoreActivityCapped(t *testing.T) {
	s := NewScorer(testCriteria())

	got := s.Score(model.Company{
		Name: "X",
		RecentNews: []string{
			"Announced new product launch",
			"Plans to expand into Europe",
			"Strategic partnership signed",
			"Raised growth investment",
		},
	})

	// 4 matches at 0.03 each would be 0.12; capped at 0.10.
	assert.InDelta(t, 0.10, got.Score, 1e-9)
}

func TestScoreDigitalPresence(t *testing.T) {
	s := NewScorer(testCriteria())

	got := s.Score(model.Company{
		Name:        "X",
		Website:     "https://example.com",
		LinkedInURL: "https://linkedin.com/company/example",
	})

	assert.InDelta(t, 0.10, got.Score, 1e-9)
	assert.Contains(t, got.Rationale, "Has website")
	assert.Contains(t, got.Rationale, "Has LinkedIn presence")
}

func TestScoreClampedToOne(t *testing.T) {
	s := NewScorer(testCriteria())

	got := s.Score(model.Company{
		Name:         "Ideal Corp",
		Industry:     "Digital Signage",
		Size:         "Large (5000+ employees)",
		Revenue:      "$2 billion",
		Technologies: []string{"Digital Printing", "LED Displays", "Wide Format"},
		RecentNews:   []string{"New product launch", "Expansion announced", "Partnership formed", "Investment round"},
		Website:      "https://ideal.example.com",
		LinkedInURL:  "https://linkedin.com/company/ideal",
	})

	assert.LessOrEqual(t, got.Score, 1.0)
	assert.InDelta(t, 1.0, got.Score, 1e-9)
	assert.NotEqual(t, "Limited qualification data available", got.Rationale)
}

func TestFirstInt(t *testing.T) {
	assert.Equal(t, 150, firstInt("$150 million"))
	assert.Equal(t, 1, firstInt("$1.2 billion"))
	assert.Equal(t, 0, firstInt("no digits"))
}

func TestBlend(t *testing.T) {
	rule := RuleScore{Score: 0.5, Rationale: "rule"}

	t.Run("with model score", func(t *testing.T) {
		b := Blend(rule, &ModelScore{Score: 0.9, Rationale: "model"})
		assert.InDelta(t, 0.4*0.5+0.6*0.9, b.Final, 1e-9)
		require.NotNil(t, b.Model)
	})

	t.Run("without model score", func(t *testing.T) {
		b := Blend(rule, nil)
		assert.Equal(t, 0.5, b.Final)
		assert.Nil(t, b.Model)
	})

	t.Run("clamped", func(t *testing.T) {
		b := Blend(RuleScore{Score: 1.0}, &ModelScore{Score: 1.0})
		assert.Equal(t, 1.0, b.Final)
	})
}
