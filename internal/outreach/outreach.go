// Package outreach generates personalized outreach packages (subject,
// primary message, follow-up sequence) for qualified leads. Generation
// never fails a lead: model errors substitute the canned fallback.
package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
	"github.com/instalily/leadgen/pkg/anthropic"
)

// Generator produces outreach content for leads.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	minLen    int
	maxLen    int
	followUps int
}

// New builds a Generator. The limiter paces bulk generation at one request
// per cfg.DelaySecs.
func New(client anthropic.Client, modelID string, maxTokens int64, cfg config.OutreachConfig) *Generator {
	delay := time.Duration(cfg.DelaySecs) * time.Second
	if delay <= 0 {
		delay = time.Second
	}
	minLen := cfg.MinLength
	if minLen <= 0 {
		minLen = 50
	}
	maxLen := cfg.MaxLength
	if maxLen <= 0 {
		maxLen = 2000
	}
	followUps := cfg.FollowUps
	if followUps <= 0 {
		followUps = 2
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Generator{
		client:    client,
		model:     modelID,
		maxTokens: maxTokens,
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
		minLen:    minLen,
		maxLen:    maxLen,
		followUps: followUps,
	}
}

const outreachSystemPrompt = `You write concise B2B sales outreach for a
distributor of sign and graphics supplies. Given a company profile and a
contact, produce a JSON object:
{"subject": "...", "message": "...",
 "follow_ups": [{"timing": "1 week after initial", "message": "..."}],
 "personalization": ["fact used", "..."]}
Keep the primary message under 150 words and reference something specific
about the company.`

// Generate produces an outreach package for a lead's company and contact.
// A model failure returns the canned fallback package instead of an error.
func (g *Generator) Generate(ctx context.Context, c model.Company, contact model.Stakeholder) *model.Outreach {
	if g.client == nil {
		return g.fallback(c, contact)
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    outreachSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: outreachProfile(c, contact)},
		},
	})
	if err != nil {
		zap.L().Warn("outreach: generation failed, using fallback",
			zap.String("company", c.Name),
			zap.Error(err),
		)
		return g.fallback(c, contact)
	}
	resp.Usage.LogUsage(g.model, "outreach")

	o := g.parse(resp.Text(), c)
	if o == nil {
		zap.L().Warn("outreach: unparseable model output, using fallback",
			zap.String("company", c.Name),
		)
		return g.fallback(c, contact)
	}

	if issues := g.Validate(o, c.Name); len(issues) > 0 {
		zap.L().Warn("outreach: content validation issues",
			zap.String("company", c.Name),
			zap.Strings("issues", issues),
		)
	}
	return o
}

// BulkItem pairs a lead with the data needed to generate its outreach.
type BulkItem struct {
	LeadID  string
	Company model.Company
	Contact model.Stakeholder
}

// GenerateBulk generates outreach sequentially, paced by the limiter.
// Returns a map keyed by lead ID; context cancellation stops the run early.
func (g *Generator) GenerateBulk(ctx context.Context, items []BulkItem) map[string]*model.Outreach {
	out := make(map[string]*model.Outreach, len(items))
	for _, item := range items {
		if err := g.limiter.Wait(ctx); err != nil {
			zap.L().Warn("outreach: bulk generation interrupted", zap.Error(err))
			break
		}
		o := g.Generate(ctx, item.Company, item.Contact)
		o.LeadID = item.LeadID
		out[item.LeadID] = o
	}
	return out
}

func outreachProfile(c model.Company, contact model.Stakeholder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", c.Name)
	if c.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", c.Industry)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", c.Description)
	}
	if c.SourceEvent != "" {
		fmt.Fprintf(&b, "Met at: %s\n", c.SourceEvent)
	}
	if len(c.Technologies) > 0 {
		fmt.Fprintf(&b, "Technologies: %s\n", strings.Join(c.Technologies, ", "))
	}
	title := contact.Title
	if title == "" {
		title = "Decision Maker"
	}
	fmt.Fprintf(&b, "Contact title: %s\n", title)
	return b.String()
}

func (g *Generator) parse(text string, c model.Company) *model.Outreach {
	obj := firstJSONObject(text)
	if obj == "" {
		return nil
	}
	var parsed struct {
		Subject   string `json:"subject"`
		Message   string `json:"message"`
		FollowUps []struct {
			Timing  string `json:"timing"`
			Message string `json:"message"`
		} `json:"follow_ups"`
		Personalization []string `json:"personalization"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil
	}
	if parsed.Subject == "" || parsed.Message == "" {
		return nil
	}

	o := &model.Outreach{
		Subject:         parsed.Subject,
		Message:         parsed.Message,
		Personalization: parsed.Personalization,
		GeneratedAt:     time.Now().UTC(),
	}
	for i, fu := range parsed.FollowUps {
		if i >= g.followUps {
			break
		}
		timing := fu.Timing
		if timing == "" {
			timing = defaultTiming(i + 1)
		}
		o.FollowUps = append(o.FollowUps, model.FollowUp{
			Sequence: i + 1,
			Timing:   timing,
			Message:  fu.Message,
		})
	}
	for len(o.FollowUps) < g.followUps {
		seq := len(o.FollowUps) + 1
		o.FollowUps = append(o.FollowUps, model.FollowUp{
			Sequence: seq,
			Timing:   defaultTiming(seq),
			Message:  fmt.Sprintf("Following up on my note about supporting %s's graphics production.", c.Name),
		})
	}
	return o
}

func defaultTiming(sequence int) string {
	if sequence == 1 {
		return "1 week after initial"
	}
	return fmt.Sprintf("%d weeks after initial", sequence)
}

// fallback is the canned outreach used when generation fails.
func (g *Generator) fallback(c model.Company, contact model.Stakeholder) *model.Outreach {
	greeting := "Hi there"
	if contact.Name != "" {
		greeting = "Hi " + contact.Name
	}
	o := &model.Outreach{
		Subject: fmt.Sprintf("Supporting %s's signage and graphics work", c.Name),
		Message: fmt.Sprintf(
			"%s,\n\nI came across %s and wanted to reach out. We supply sign shops and "+
				"graphics producers with wide format materials, and I'd welcome a quick "+
				"conversation about whether we could support your team.\n\n"+
				"Would you be open to a short call next week?",
			greeting, c.Name,
		),
		Personalization: []string{"company name"},
		Fallback:        true,
		GeneratedAt:     time.Now().UTC(),
	}
	for i := 1; i <= g.followUps; i++ {
		o.FollowUps = append(o.FollowUps, model.FollowUp{
			Sequence: i,
			Timing:   defaultTiming(i),
			Message:  fmt.Sprintf("Just circling back on my note about supporting %s. Any interest in a quick call?", c.Name),
		})
	}
	return o
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
