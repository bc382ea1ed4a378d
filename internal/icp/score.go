// Package icp scores companies against the ideal customer profile using
// weighted rules over enrichment data. Scores are deterministic and cheap;
// the model-based assessment in internal/qualify blends on top.
package icp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
)

// Component weights. The six buckets sum to 1.0 at their caps.
const (
	industryWeight  = 0.25
	secondaryWeight = 0.15

	sizeLargeWeight  = 0.20
	sizeMediumWeight = 0.15
	sizeHintWeight   = 0.12

	revenueBillionWeight = 0.20
	revenueHighWeight    = 0.18
	revenueMidWeight     = 0.15
	revenueLowWeight     = 0.12

	techMatchWeight = 0.05
	techCap         = 0.15

	activityMatchWeight = 0.03
	activityCap         = 0.10

	websiteWeight  = 0.03
	linkedinWeight = 0.07
)

// limitedDataRationale is returned when no rule fires.
const limitedDataRationale = "Limited qualification data available"

// RuleScore is the deterministic component of qualification.
type RuleScore struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

// ModelScore is the model-based assessment of a company.
type ModelScore struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

// BlendedScore combines the rule and model assessments. Model is nil when
// the model call failed or was skipped; Final then equals the rule score.
type BlendedScore struct {
	Rule  RuleScore   `json:"rule"`
	Model *ModelScore `json:"model,omitempty"`
	Final float64     `json:"final"`
}

const (
	ruleBlendWeight  = 0.4
	modelBlendWeight = 0.6
)

// Blend combines a rule score with an optional model score.
func Blend(rule RuleScore, ms *ModelScore) BlendedScore {
	b := BlendedScore{Rule: rule, Model: ms, Final: rule.Score}
	if ms != nil {
		b.Final = ruleBlendWeight*rule.Score + modelBlendWeight*ms.Score
	}
	if b.Final > 1.0 {
		b.Final = 1.0
	}
	return b
}

// Scorer evaluates companies against configured ICP criteria.
type Scorer struct {
	criteria config.ICPConfig
}

// NewScorer builds a Scorer from ICP criteria.
func NewScorer(criteria config.ICPConfig) *Scorer {
	return &Scorer{criteria: criteria}
}

// Score computes the rule score for a company. Empty fields contribute
// nothing; a company with no qualifying data scores 0.0 with the
// limited-data rationale.
func (s *Scorer) Score(c model.Company) RuleScore {
	var score float64
	var reasons []string

	if pts, why := s.scoreIndustry(c.Industry); pts > 0 {
		score += pts
		reasons = append(reasons, why)
	}
	if pts, why := scoreSize(c.Size); pts > 0 {
		score += pts
		reasons = append(reasons, why)
	}
	if pts, why := scoreRevenue(c.Revenue); pts > 0 {
		score += pts
		reasons = append(reasons, why)
	}
	if pts, why := s.scoreTechnologies(c.Technologies); pts > 0 {
		score += pts
		reasons = append(reasons, why)
	}
	if pts, why := s.scoreActivity(c.RecentNews); pts > 0 {
		score += pts
		reasons = append(reasons, why)
	}
	if c.Website != "" {
		score += websiteWeight
		reasons = append(reasons, "Has website")
	}
	if c.LinkedInURL != "" {
		score += linkedinWeight
		reasons = append(reasons, "Has LinkedIn presence")
	}

	if score > 1.0 {
		score = 1.0
	}

	rationale := limitedDataRationale
	if len(reasons) > 0 {
		rationale = strings.Join(reasons, ". ")
	}
	return RuleScore{Score: score, Rationale: rationale}
}

func (s *Scorer) scoreIndustry(industry string) (float64, string) {
	if industry == "" {
		return 0, ""
	}
	lower := strings.ToLower(industry)
	for _, target := range s.criteria.TargetIndustries {
		if strings.Contains(lower, strings.ToLower(target)) {
			return industryWeight, fmt.Sprintf("Industry match: %s", industry)
		}
	}
	for _, kw := range s.criteria.SecondaryKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return secondaryWeight, fmt.Sprintf("Related industry: %s", industry)
		}
	}
	return 0, ""
}

func scoreSize(size string) (float64, string) {
	if size == "" {
		return 0, ""
	}
	lower := strings.ToLower(size)
	switch {
	case strings.Contains(lower, "large"):
		return sizeLargeWeight, fmt.Sprintf("Large company size: %s", size)
	case strings.Contains(lower, "medium"):
		return sizeMediumWeight, fmt.Sprintf("Medium company size: %s", size)
	case strings.Contains(lower, "100+"), strings.Contains(lower, "500+"), strings.Contains(lower, "1000+"):
		return sizeHintWeight, fmt.Sprintf("Substantial headcount: %s", size)
	}
	return 0, ""
}

func scoreRevenue(revenue string) (float64, string) {
	if revenue == "" || !strings.Contains(revenue, "$") {
		return 0, ""
	}
	// Both spelled-out and abbreviated forms count: "$2 billion", "$2B",
	// "$50 million", "$50M".
	lower := strings.ToLower(revenue)
	if strings.Contains(lower, "b") {
		return revenueBillionWeight, fmt.Sprintf("High revenue: %s", revenue)
	}
	if !strings.Contains(lower, "m") {
		return 0, ""
	}
	switch n := firstInt(revenue); {
	case n >= 100:
		return revenueHighWeight, fmt.Sprintf("Strong revenue: %s", revenue)
	case n >= 50:
		return revenueMidWeight, fmt.Sprintf("Solid revenue: %s", revenue)
	case n >= 10:
		return revenueLowWeight, fmt.Sprintf("Moderate revenue: %s", revenue)
	}
	return 0, ""
}

// firstInt extracts the first run of digits from s, or 0 if none.
func firstInt(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}

func (s *Scorer) scoreTechnologies(techs []string) (float64, string) {
	var matches int
	for _, t := range techs {
		lower := strings.ToLower(t)
		for _, focus := range s.criteria.TechnologyFocus {
			if strings.Contains(lower, strings.ToLower(focus)) {
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0, ""
	}
	pts := float64(matches) * techMatchWeight
	if pts > techCap {
		pts = techCap
	}
	return pts, fmt.Sprintf("Relevant technologies (%d match)", matches)
}

func (s *Scorer) scoreActivity(news []string) (float64, string) {
	var matches int
	for _, item := range news {
		lower := strings.ToLower(item)
		for _, signal := range s.criteria.ActivitySignals {
			if strings.Contains(lower, strings.ToLower(signal)) {
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0, ""
	}
	pts := float64(matches) * activityMatchWeight
	if pts > activityCap {
		pts = activityCap
	}
	return pts, fmt.Sprintf("Recent growth activity (%d signal)", matches)
}
