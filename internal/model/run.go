package model

// Qualification thresholds. The pipeline keeps companies at or above
// QualificationThreshold; the dashboard counts a lead as qualified only at
// the stricter DashboardQualifiedThreshold.
const (
	QualificationThreshold      = 0.7
	DashboardQualifiedThreshold = 0.8
)

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusIdle      RunStatus = "idle"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusError     RunStatus = "error"
)

// RunState is a snapshot of the pipeline's progress, served verbatim from
// the task-status endpoint.
type RunState struct {
	CurrentTask string      `json:"current_task"`
	Status      RunStatus   `json:"status"`
	Progress    int         `json:"progress"`
	Message     string      `json:"message,omitempty"`
	Results     *RunResults `json:"results,omitempty"`
}

// RunResults summarizes a completed run.
type RunResults struct {
	EventsFound       int    `json:"events_found"`
	CompaniesAnalyzed int    `json:"companies_analyzed"`
	QualifiedLeads    int    `json:"qualified_leads"`
	OutreachGenerated int    `json:"outreach_generated"`
	CompletionTime    string `json:"completion_time"`
}

// RunRequest is the caller-supplied shape of a run: which industries to
// target, how many companies to analyze, and whether to generate outreach.
// MinCompanySize is accepted for forward compatibility but not used as a
// filter.
type RunRequest struct {
	TargetIndustries []string `json:"target_industries,omitempty"`
	MaxCompanies     int      `json:"max_companies,omitempty"`
	MinCompanySize   string   `json:"min_company_size,omitempty"`
	GenerateOutreach bool     `json:"generate_outreach"`
}
