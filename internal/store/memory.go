package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/instalily/leadgen/internal/model"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs tests and
// zero-configuration runs where persistence is not needed.
type MemoryStore struct {
	mu           sync.RWMutex
	events       map[string]model.Event
	eventOrder   []string
	companies    map[string]model.Company
	companyByKey map[string]string // lowercase name -> id
	companyOrder []string
	stakeholders map[string]model.Stakeholder
	leads        map[string]model.Lead
	leadOrder    []string
	outreach     map[string]model.Outreach // keyed by lead ID
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	s := &MemoryStore{}
	s.reset()
	return s
}

func (s *MemoryStore) reset() {
	s.events = make(map[string]model.Event)
	s.eventOrder = nil
	s.companies = make(map[string]model.Company)
	s.companyByKey = make(map[string]string)
	s.companyOrder = nil
	s.stakeholders = make(map[string]model.Stakeholder)
	s.leads = make(map[string]model.Lead)
	s.leadOrder = nil
	s.outreach = make(map[string]model.Outreach)
}

func (s *MemoryStore) Migrate(_ context.Context) error { return nil }
func (s *MemoryStore) Close() error                    { return nil }

func (s *MemoryStore) CreateEvent(_ context.Context, ev model.Event) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = uuid.New().String()
	ev.CreatedAt = time.Now().UTC()
	s.events[ev.ID] = ev
	s.eventOrder = append(s.eventOrder, ev.ID)
	return &ev, nil
}

func (s *MemoryStore) GetEvent(_ context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ev, nil
}

func (s *MemoryStore) ListEvents(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Event, 0, len(s.eventOrder))
	for _, id := range s.eventOrder {
		out = append(out, s.events[id])
	}
	return out, nil
}

func companyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *MemoryStore) UpsertCompany(_ context.Context, c model.Company) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := companyKey(c.Name)
	if id, ok := s.companyByKey[key]; ok {
		existing := s.companies[id]
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		c.UpdatedAt = now
		s.companies[id] = c
		return &c, nil
	}

	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.companies[c.ID] = c
	s.companyByKey[key] = c.ID
	s.companyOrder = append(s.companyOrder, c.ID)
	return &c, nil
}

func (s *MemoryStore) GetCompany(_ context.Context, id string) (*model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) ListCompanies(_ context.Context, limit int) ([]model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Company, 0, len(s.companyOrder))
	for _, id := range s.companyOrder {
		out = append(out, s.companies[id])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateStakeholder(_ context.Context, st model.Stakeholder) (*model.Stakeholder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.ID = uuid.New().String()
	st.CreatedAt = time.Now().UTC()
	s.stakeholders[st.ID] = st
	return &st, nil
}

func (s *MemoryStore) ListStakeholdersByCompany(_ context.Context, companyID string) ([]model.Stakeholder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Stakeholder
	for _, st := range s.stakeholders {
		if st.CompanyID == companyID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CreateLead(_ context.Context, l model.Lead) (*model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	l.ID = uuid.New().String()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = model.LeadStatusNew
	}
	if l.Priority == "" {
		l.Priority = model.PriorityForScore(l.QualificationScore)
	}
	s.leads[l.ID] = l
	s.leadOrder = append(s.leadOrder, l.ID)
	return &l, nil
}

func (s *MemoryStore) GetLead(_ context.Context, id string) (*model.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (s *MemoryStore) ListLeads(_ context.Context, filter LeadFilter) ([]model.Lead, int, error) {
	filter = NormalizeFilter(filter)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []model.Lead
	for _, id := range s.leadOrder {
		l := s.leads[id]
		if l.QualificationScore < filter.MinScore {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		matched = append(matched, l)
	}

	switch filter.SortBy {
	case SortByCompanyName:
		sort.SliceStable(matched, func(i, j int) bool {
			return s.leadCompanyName(matched[i]) < s.leadCompanyName(matched[j])
		})
	case SortByCreatedAt:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].QualificationScore > matched[j].QualificationScore
		})
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) leadCompanyName(l model.Lead) string {
	if c, ok := s.companies[l.CompanyID]; ok {
		return strings.ToLower(c.Name)
	}
	return ""
}

func (s *MemoryStore) UpdateLeadStatus(_ context.Context, id string, status model.LeadStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leads[id]
	if !ok {
		return ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now().UTC()
	s.leads[id] = l
	return nil
}

func (s *MemoryStore) CreateOutreach(_ context.Context, o model.Outreach) (*model.Outreach, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leads[o.LeadID]; !ok {
		return nil, ErrNotFound
	}
	o.ID = uuid.New().String()
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}
	s.outreach[o.LeadID] = o
	return &o, nil
}

func (s *MemoryStore) GetOutreachByLead(_ context.Context, leadID string) (*model.Outreach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.outreach[leadID]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *MemoryStore) Stats(_ context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		TotalLeads:     len(s.leads),
		TotalCompanies: len(s.companies),
		TotalEvents:    len(s.events),
		StatusCounts:   make(map[string]int),
	}
	var sum float64
	for _, l := range s.leads {
		sum += l.QualificationScore
		stats.StatusCounts[string(l.Status)]++
		if l.QualificationScore >= model.DashboardQualifiedThreshold {
			stats.QualifiedLeads++
		}
	}
	if stats.TotalLeads > 0 {
		stats.AverageScore = sum / float64(stats.TotalLeads)
	}
	return stats, nil
}

func (s *MemoryStore) ExportLeads(_ context.Context) ([]ExportedLead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ExportedLead, 0, len(s.leadOrder))
	for _, id := range s.leadOrder {
		l := s.leads[id]
		c := s.companies[l.CompanyID]
		row := ExportedLead{
			LeadID:             l.ID,
			CompanyName:        c.Name,
			Industry:           c.Industry,
			Size:               c.Size,
			Location:           c.Location,
			Website:            c.Website,
			SourceEvent:        c.SourceEvent,
			QualificationScore: l.QualificationScore,
			Status:             string(l.Status),
			Priority:           string(l.Priority),
			Rationale:          l.Rationale,
			CreatedAt:          l.CreatedAt.Format(time.RFC3339),
		}
		if o, ok := s.outreach[l.ID]; ok {
			row.OutreachSubject = o.Subject
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return nil
}
