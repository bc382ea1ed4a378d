package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/instalily/leadgen/internal/model"
	"github.com/instalily/leadgen/internal/pipeline"
	"github.com/instalily/leadgen/internal/store"
)

const maxCompaniesLimit = 200

// handleGenerateLeads kicks off a pipeline run in the background. Only one
// run may be active; a second request gets 409.
func (s *Server) handleGenerateLeads(w http.ResponseWriter, r *http.Request) {
	var req model.RunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
	}
	if req.MaxCompanies < 0 || req.MaxCompanies > maxCompaniesLimit {
		s.writeError(w, http.StatusBadRequest, "max_companies out of range", nil)
		return
	}

	// The run outlives the request; it is cancelled only by server shutdown.
	if err := s.pipeline.Start(s.runCtx, req); err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			s.writeError(w, http.StatusConflict, "a lead generation run is already in progress", nil)
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to start run", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "started",
		"message": "Lead generation pipeline started",
	})
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.pipeline.Tracker().Snapshot())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":           stats,
		"pipeline_status": s.pipeline.Tracker().Snapshot().Status,
	})
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.LeadFilter{SortBy: q.Get("sort_by")}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid page", nil)
			return
		}
		filter.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		filter.Limit = n
	}
	if v := q.Get("min_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			s.writeError(w, http.StatusBadRequest, "min_score must be between 0 and 1", nil)
			return
		}
		filter.MinScore = f
	}
	if v := q.Get("status"); v != "" {
		filter.Status = model.LeadStatus(v)
	}

	filter = store.NormalizeFilter(filter)
	leads, total, err := s.store.ListLeads(r.Context(), filter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list leads", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// handleGetLead returns the lead with its company, outreach and source event.
func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	lead, err := s.store.GetLead(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to load lead", err)
		return
	}

	resp := map[string]any{"lead": lead}
	if company, cErr := s.store.GetCompany(ctx, lead.CompanyID); cErr == nil {
		resp["company"] = company
	}
	if o, oErr := s.store.GetOutreachByLead(ctx, lead.ID); oErr == nil {
		resp["outreach"] = o
	}
	if lead.EventID != "" {
		if ev, eErr := s.store.GetEvent(ctx, lead.EventID); eErr == nil {
			resp["event"] = ev
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status model.LeadStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	switch body.Status {
	case model.LeadStatusNew, model.LeadStatusQualified, model.LeadStatusContacted,
		model.LeadStatusResponded, model.LeadStatusClosed:
	default:
		s.writeError(w, http.StatusBadRequest, "invalid status", nil)
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.UpdateLeadStatus(r.Context(), id, body.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to update lead status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(body.Status)})
}

func (s *Server) handleClearLeads(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to clear data", err)
		return
	}
	s.pipeline.Tracker().Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	evs, err := s.store.ListEvents(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list events", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": evs, "total": len(evs)})
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		if n < limit {
			limit = n
		}
	}
	companies, err := s.store.ListCompanies(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list companies", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies, "total": len(companies)})
}

// handleGenerateOutreach generates an outreach package for one lead. If the
// lead already has outreach the stored package is returned unchanged.
func (s *Server) handleGenerateOutreach(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	lead, err := s.store.GetLead(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to load lead", err)
		return
	}

	if existing, oErr := s.store.GetOutreachByLead(ctx, lead.ID); oErr == nil {
		writeJSON(w, http.StatusOK, map[string]any{"outreach": existing, "generated": false})
		return
	}

	company, err := s.store.GetCompany(ctx, lead.CompanyID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load company", err)
		return
	}

	var contact model.Stakeholder
	if stakeholders, sErr := s.store.ListStakeholdersByCompany(ctx, lead.CompanyID); sErr == nil && len(stakeholders) > 0 {
		contact = stakeholders[0]
	} else {
		pc := company.Primary()
		if pc.Title == "" {
			pc.Title = "Decision Maker"
		}
		contact = model.Stakeholder{
			CompanyID: lead.CompanyID,
			Name:      pc.Name,
			Title:     pc.Title,
			Email:     pc.Email,
			Pending:   pc.Name == "",
		}
	}

	o := s.generator.Generate(ctx, *company, contact)
	o.LeadID = lead.ID
	saved, err := s.store.CreateOutreach(ctx, *o)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to save outreach", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outreach": saved, "generated": true})
}

func (s *Server) handleExportLeads(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ExportLeads(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to export leads", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": rows, "total": len(rows)})
}
