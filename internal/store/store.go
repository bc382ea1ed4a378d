// Package store persists events, companies, stakeholders, leads and
// outreach. Three implementations share the Store interface: SQLite
// (default), Postgres, and an in-memory store for tests and ephemeral runs.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/instalily/leadgen/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = eris.New("store: not found")

// Lead sort keys accepted by LeadFilter.SortBy.
const (
	SortByScore       = "qualification_score"
	SortByCompanyName = "company_name"
	SortByCreatedAt   = "created_at"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	MinScore float64          `json:"min_score,omitempty"`
	Status   model.LeadStatus `json:"status,omitempty"`
	SortBy   string           `json:"sort_by,omitempty"`
	Page     int              `json:"page,omitempty"`
	Limit    int              `json:"limit,omitempty"`
}

// Stats summarizes stored data for the dashboard.
type Stats struct {
	TotalLeads     int            `json:"total_leads"`
	QualifiedLeads int            `json:"qualified_leads"`
	TotalCompanies int            `json:"total_companies"`
	TotalEvents    int            `json:"total_events"`
	AverageScore   float64        `json:"average_score"`
	StatusCounts   map[string]int `json:"status_counts"`
}

// ExportedLead is the flattened row shape for lead export.
type ExportedLead struct {
	LeadID             string  `json:"lead_id"`
	CompanyName        string  `json:"company_name"`
	Industry           string  `json:"industry"`
	Size               string  `json:"size"`
	Location           string  `json:"location"`
	Website            string  `json:"website"`
	SourceEvent        string  `json:"source_event"`
	QualificationScore float64 `json:"qualification_score"`
	Status             string  `json:"status"`
	Priority           string  `json:"priority"`
	Rationale          string  `json:"rationale"`
	OutreachSubject    string  `json:"outreach_subject"`
	CreatedAt          string  `json:"created_at"`
}

// Store defines the persistence interface for the lead generation pipeline.
type Store interface {
	// Events
	CreateEvent(ctx context.Context, ev model.Event) (*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)

	// Companies (unique by name; upsert fills the existing record)
	UpsertCompany(ctx context.Context, c model.Company) (*model.Company, error)
	GetCompany(ctx context.Context, id string) (*model.Company, error)
	ListCompanies(ctx context.Context, limit int) ([]model.Company, error)

	// Stakeholders
	CreateStakeholder(ctx context.Context, s model.Stakeholder) (*model.Stakeholder, error)
	ListStakeholdersByCompany(ctx context.Context, companyID string) ([]model.Stakeholder, error)

	// Leads
	CreateLead(ctx context.Context, l model.Lead) (*model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, int, error)
	UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) error

	// Outreach (one package per lead)
	CreateOutreach(ctx context.Context, o model.Outreach) (*model.Outreach, error)
	GetOutreachByLead(ctx context.Context, leadID string) (*model.Outreach, error)

	// Aggregates
	Stats(ctx context.Context) (*Stats, error)
	ExportLeads(ctx context.Context) ([]ExportedLead, error)

	// Clear removes all stored data.
	Clear(ctx context.Context) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// NormalizeFilter applies defaults and bounds to a lead filter.
func NormalizeFilter(f LeadFilter) LeadFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	switch f.SortBy {
	case SortByScore, SortByCompanyName, SortByCreatedAt:
	default:
		f.SortBy = SortByScore
	}
	return f
}
