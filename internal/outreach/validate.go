package outreach

import (
	"fmt"
	"strings"

	"github.com/instalily/leadgen/internal/model"
)

// spamTriggers are phrases that commonly trip spam filters.
var spamTriggers = []string{
	"act now", "limited time", "100% free", "guarantee", "no obligation",
	"click here", "once in a lifetime",
}

// Validate checks outreach content quality and returns a list of issues.
// An empty slice means the content passed.
func (g *Generator) Validate(o *model.Outreach, companyName string) []string {
	var issues []string

	n := len(o.Message)
	if n < g.minLen {
		issues = append(issues, fmt.Sprintf("message too short (%d chars, min %d)", n, g.minLen))
	}
	if n > g.maxLen {
		issues = append(issues, fmt.Sprintf("message too long (%d chars, max %d)", n, g.maxLen))
	}

	lower := strings.ToLower(o.Message)
	for _, trigger := range spamTriggers {
		if strings.Contains(lower, trigger) {
			issues = append(issues, fmt.Sprintf("spam trigger phrase: %q", trigger))
		}
	}

	if companyName != "" && !strings.Contains(lower, strings.ToLower(companyName)) {
		issues = append(issues, "message does not mention the company")
	}

	return issues
}
