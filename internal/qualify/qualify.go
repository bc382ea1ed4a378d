// Package qualify blends the deterministic ICP rule score with a model
// assessment of fit. Model failures degrade to the rule score alone rather
// than failing qualification.
package qualify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/icp"
	"github.com/instalily/leadgen/internal/model"
	"github.com/instalily/leadgen/pkg/anthropic"
)

// Qualifier scores companies with a rule/model blend.
type Qualifier struct {
	client    anthropic.Client
	scorer    *icp.Scorer
	model     string
	maxTokens int64
}

// New builds a Qualifier. A nil client disables the model assessment and
// every score falls back to rules only.
func New(client anthropic.Client, scorer *icp.Scorer, modelID string, maxTokens int64) *Qualifier {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Qualifier{
		client:    client,
		scorer:    scorer,
		model:     modelID,
		maxTokens: maxTokens,
	}
}

const qualifySystemPrompt = `You are a B2B sales analyst for a distributor of
sign and graphics supplies. Assess how well a company fits as a buyer of
large format printing, signage and graphics products. Respond with a JSON
object: {"score": <0.0-1.0>, "rationale": "<one or two sentences>"}.`

// Qualify returns the blended qualification score for a company.
func (q *Qualifier) Qualify(ctx context.Context, c model.Company) icp.BlendedScore {
	rule := q.scorer.Score(c)

	if q.client == nil {
		return icp.Blend(rule, nil)
	}

	ms, err := q.modelAssessment(ctx, c)
	if err != nil {
		zap.L().Warn("qualify: model assessment failed, using rule score",
			zap.String("company", c.Name),
			zap.Error(err),
		)
		return icp.Blend(rule, nil)
	}
	return icp.Blend(rule, ms)
}

func (q *Qualifier) modelAssessment(ctx context.Context, c model.Company) (*icp.ModelScore, error) {
	resp, err := q.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     q.model,
		MaxTokens: q.maxTokens,
		System:    qualifySystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: companyProfile(c)},
		},
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogUsage(q.model, "qualify")

	ms, err := parseModelScore(resp.Text())
	if err != nil {
		return nil, err
	}
	return ms, nil
}

func companyProfile(c model.Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", c.Name)
	if c.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", c.Industry)
	}
	if c.Size != "" {
		fmt.Fprintf(&b, "Size: %s\n", c.Size)
	}
	if c.Revenue != "" {
		fmt.Fprintf(&b, "Revenue: %s\n", c.Revenue)
	}
	if c.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", c.Location)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", c.Description)
	}
	if len(c.Technologies) > 0 {
		fmt.Fprintf(&b, "Technologies: %s\n", strings.Join(c.Technologies, ", "))
	}
	if len(c.RecentNews) > 0 {
		fmt.Fprintf(&b, "Recent news: %s\n", strings.Join(c.RecentNews, "; "))
	}
	if c.SourceEvent != "" {
		fmt.Fprintf(&b, "Found at event: %s\n", c.SourceEvent)
	}
	return b.String()
}

var scoreDigitRe = regexp.MustCompile(`(0?\.\d+|[01](?:\.\d+)?)`)

// parseModelScore extracts a score and rationale from model output. It
// first tries the embedded JSON object, then falls back to scanning for the
// first decimal in range.
func parseModelScore(text string) (*icp.ModelScore, error) {
	if obj := firstJSONObject(text); obj != "" {
		var parsed struct {
			Score     float64 `json:"score"`
			Rationale string  `json:"rationale"`
		}
		if err := json.Unmarshal([]byte(obj), &parsed); err == nil {
			if parsed.Score < 0 || parsed.Score > 1 {
				return nil, eris.Errorf("qualify: model score out of range: %v", parsed.Score)
			}
			return &icp.ModelScore{Score: parsed.Score, Rationale: parsed.Rationale}, nil
		}
	}

	if m := scoreDigitRe.FindString(text); m != "" {
		score, err := strconv.ParseFloat(m, 64)
		if err == nil && score >= 0 && score <= 1 {
			return &icp.ModelScore{Score: score, Rationale: strings.TrimSpace(text)}, nil
		}
	}
	return nil, eris.New("qualify: no score found in model output")
}

// firstJSONObject returns the first balanced {...} block in s, or "".
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

const decisionMakersPrompt = `List the 3-5 job titles most likely to own
purchasing decisions for sign and graphics supplies at the company below.
Respond with a JSON array: [{"title": "...", "department": "..."}].`

// IdentifyDecisionMakers asks the model for likely buyer titles at the
// company and returns them as pending stakeholders. Failures return an
// empty slice.
func (q *Qualifier) IdentifyDecisionMakers(ctx context.Context, c model.Company) []model.Stakeholder {
	if q.client == nil {
		return nil
	}

	resp, err := q.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     q.model,
		MaxTokens: q.maxTokens,
		System:    decisionMakersPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: companyProfile(c)},
		},
	})
	if err != nil {
		zap.L().Warn("qualify: decision maker lookup failed",
			zap.String("company", c.Name),
			zap.Error(err),
		)
		return nil
	}
	resp.Usage.LogUsage(q.model, "decision-makers")

	return parseStakeholders(resp.Text())
}

func parseStakeholders(text string) []model.Stakeholder {
	arr := firstJSONArray(text)
	if arr == "" {
		return nil
	}
	var parsed []struct {
		Title      string `json:"title"`
		Department string `json:"department"`
	}
	if err := json.Unmarshal([]byte(arr), &parsed); err != nil {
		return nil
	}
	out := make([]model.Stakeholder, 0, len(parsed))
	for _, p := range parsed {
		if p.Title == "" {
			continue
		}
		out = append(out, model.Stakeholder{
			Title:      p.Title,
			Department: p.Department,
			Pending:    true,
		})
	}
	return out
}

// firstJSONArray returns the first balanced [...] block in s, or "".
func firstJSONArray(s string) string {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
