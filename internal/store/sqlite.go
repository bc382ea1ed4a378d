package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/instalily/leadgen/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS events (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	date            TEXT,
	location        TEXT,
	industry        TEXT,
	description     TEXT,
	website         TEXT,
	exhibitors      TEXT,
	relevance_score REAL NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS companies (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL UNIQUE COLLATE NOCASE,
	website             TEXT,
	industry            TEXT,
	size                TEXT,
	revenue             TEXT,
	location            TEXT,
	description         TEXT,
	linkedin_url        TEXT,
	technologies        TEXT,
	recent_news         TEXT,
	contacts            TEXT,
	qualification_score REAL NOT NULL DEFAULT 0,
	source_event        TEXT,
	created_at          DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at          DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS stakeholders (
	id                   TEXT PRIMARY KEY,
	company_id           TEXT NOT NULL REFERENCES companies(id),
	name                 TEXT,
	title                TEXT,
	department           TEXT,
	email                TEXT,
	phone                TEXT,
	linkedin             TEXT,
	pending              INTEGER NOT NULL DEFAULT 0,
	decision_maker_score REAL NOT NULL DEFAULT 0,
	created_at           DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS leads (
	id                  TEXT PRIMARY KEY,
	event_id            TEXT,
	company_id          TEXT NOT NULL REFERENCES companies(id),
	stakeholder_id      TEXT,
	qualification_score REAL NOT NULL DEFAULT 0,
	rationale           TEXT,
	status              TEXT NOT NULL DEFAULT 'new',
	priority            TEXT,
	outreach_subject    TEXT,
	outreach_message    TEXT,
	notes               TEXT,
	created_at          DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at          DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS outreach (
	id              TEXT PRIMARY KEY,
	lead_id         TEXT NOT NULL UNIQUE REFERENCES leads(id),
	subject         TEXT NOT NULL,
	message         TEXT NOT NULL,
	follow_ups      TEXT,
	personalization TEXT,
	fallback        INTEGER NOT NULL DEFAULT 0,
	generated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_stakeholders_company_id ON stakeholders(company_id);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(qualification_score);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_company_id ON leads(company_id);
CREATE INDEX IF NOT EXISTS idx_outreach_lead_id ON outreach(lead_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateEvent(ctx context.Context, ev model.Event) (*model.Event, error) {
	ev.ID = uuid.New().String()
	ev.CreatedAt = time.Now().UTC()

	exhibitors, err := marshalList(ev.Exhibitors)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal exhibitors")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO events (id, name, date, location, industry, description, website, exhibitors, relevance_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			date = excluded.date, location = excluded.location,
			description = excluded.description, website = excluded.website,
			exhibitors = excluded.exhibitors, relevance_score = excluded.relevance_score`,
		ev.ID, ev.Name, ev.Date, ev.Location, ev.Industry, ev.Description,
		ev.Website, exhibitors, ev.RelevanceScore, ev.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert event %s", ev.Name)
	}

	// The upsert may have kept an earlier row's id.
	row := s.db.QueryRowContext(ctx, `SELECT id FROM events WHERE name = ?`, ev.Name)
	if err := row.Scan(&ev.ID); err != nil {
		return nil, eris.Wrap(err, "sqlite: select event id")
	}
	return &ev, nil
}

func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, date, location, industry, description, website, exhibitors, relevance_score, created_at
		 FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

func (s *SQLiteStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, date, location, industry, description, website, exhibitors, relevance_score, created_at
		 FROM events ORDER BY relevance_score DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list events")
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list events iterate")
}

func (s *SQLiteStore) UpsertCompany(ctx context.Context, c model.Company) (*model.Company, error) {
	now := time.Now().UTC()

	var existingID string
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM companies WHERE name = ?`, c.Name,
	).Scan(&existingID, &createdAt)
	switch {
	case err == sql.ErrNoRows:
		c.ID = uuid.New().String()
		c.CreatedAt = now
	case err != nil:
		return nil, eris.Wrapf(err, "sqlite: lookup company %s", c.Name)
	default:
		c.ID = existingID
		c.CreatedAt = createdAt
	}
	c.UpdatedAt = now

	technologies, err := marshalList(c.Technologies)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal technologies")
	}
	news, err := marshalList(c.RecentNews)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal recent news")
	}
	contacts, err := json.Marshal(c.Contacts)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal contacts")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, website, industry, size, revenue, location, description,
			linkedin_url, technologies, recent_news, contacts, qualification_score, source_event, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			website = excluded.website, industry = excluded.industry, size = excluded.size,
			revenue = excluded.revenue, location = excluded.location, description = excluded.description,
			linkedin_url = excluded.linkedin_url, technologies = excluded.technologies,
			recent_news = excluded.recent_news, contacts = excluded.contacts,
			qualification_score = excluded.qualification_score, source_event = excluded.source_event,
			updated_at = excluded.updated_at`,
		c.ID, c.Name, c.Website, c.Industry, c.Size, c.Revenue, c.Location, c.Description,
		c.LinkedInURL, technologies, news, string(contacts), c.QualificationScore, c.SourceEvent,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: upsert company %s", c.Name)
	}
	return &c, nil
}

func (s *SQLiteStore) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	row := s.db.QueryRowContext(ctx, companySelect+` WHERE id = ?`, id)
	return scanCompany(row)
}

const companySelect = `SELECT id, name, website, industry, size, revenue, location, description,
	linkedin_url, technologies, recent_news, contacts, qualification_score, source_event, created_at, updated_at
 FROM companies`

func (s *SQLiteStore) ListCompanies(ctx context.Context, limit int) ([]model.Company, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		companySelect+` ORDER BY qualification_score DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

func (s *SQLiteStore) CreateStakeholder(ctx context.Context, st model.Stakeholder) (*model.Stakeholder, error) {
	st.ID = uuid.New().String()
	st.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stakeholders (id, company_id, name, title, department, email, phone, linkedin, pending, decision_maker_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.CompanyID, st.Name, st.Title, st.Department, st.Email, st.Phone,
		st.LinkedIn, st.Pending, st.DecisionMakerScore, st.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert stakeholder for company %s", st.CompanyID)
	}
	return &st, nil
}

func (s *SQLiteStore) ListStakeholdersByCompany(ctx context.Context, companyID string) ([]model.Stakeholder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company_id, name, title, department, email, phone, linkedin, pending, decision_maker_score, created_at
		 FROM stakeholders WHERE company_id = ? ORDER BY created_at`, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list stakeholders")
	}
	defer rows.Close()

	var out []model.Stakeholder
	for rows.Next() {
		var st model.Stakeholder
		if err := rows.Scan(&st.ID, &st.CompanyID, &st.Name, &st.Title, &st.Department,
			&st.Email, &st.Phone, &st.LinkedIn, &st.Pending, &st.DecisionMakerScore, &st.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stakeholder")
		}
		out = append(out, st)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list stakeholders iterate")
}

func (s *SQLiteStore) CreateLead(ctx context.Context, l model.Lead) (*model.Lead, error) {
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

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, event_id, company_id, stakeholder_id, qualification_score, rationale,
			status, priority, outreach_subject, outreach_message, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.EventID, l.CompanyID, l.StakeholderID, l.QualificationScore, l.Rationale,
		string(l.Status), string(l.Priority), l.OutreachSubject, l.OutreachMessage, l.Notes,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert lead for company %s", l.CompanyID)
	}
	return &l, nil
}

const leadSelect = `SELECT id, event_id, company_id, stakeholder_id, qualification_score, rationale,
	status, priority, outreach_subject, outreach_message, notes, created_at, updated_at
 FROM leads`

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx, leadSelect+` WHERE id = ?`, id)
	return scanLead(row)
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, int, error) {
	filter = NormalizeFilter(filter)

	where := ` WHERE leads.qualification_score >= ?`
	args := []any{filter.MinScore}
	if filter.Status != "" {
		where += ` AND leads.status = ?`
		args = append(args, string(filter.Status))
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: count leads")
	}

	var orderBy string
	switch filter.SortBy {
	case SortByCompanyName:
		orderBy = ` ORDER BY companies.name COLLATE NOCASE ASC`
	case SortByCreatedAt:
		orderBy = ` ORDER BY leads.created_at DESC`
	default:
		orderBy = ` ORDER BY leads.qualification_score DESC`
	}

	query := `SELECT leads.id, leads.event_id, leads.company_id, leads.stakeholder_id,
		leads.qualification_score, leads.rationale, leads.status, leads.priority,
		leads.outreach_subject, leads.outreach_message, leads.notes, leads.created_at, leads.updated_at
	 FROM leads JOIN companies ON companies.id = leads.company_id` +
		where + orderBy + ` LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var out []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *l)
	}
	return out, total, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update lead status %s", id)
	}
	return checkRowsAffected(res, "lead", id)
}

func (s *SQLiteStore) CreateOutreach(ctx context.Context, o model.Outreach) (*model.Outreach, error) {
	o.ID = uuid.New().String()
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}

	followUps, err := json.Marshal(o.FollowUps)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal follow ups")
	}
	personalization, err := marshalList(o.Personalization)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal personalization")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO outreach (id, lead_id, subject, message, follow_ups, personalization, fallback, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.LeadID, o.Subject, o.Message, string(followUps), personalization, o.Fallback, o.GeneratedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert outreach for lead %s", o.LeadID)
	}
	return &o, nil
}

func (s *SQLiteStore) GetOutreachByLead(ctx context.Context, leadID string) (*model.Outreach, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, lead_id, subject, message, follow_ups, personalization, fallback, generated_at
		 FROM outreach WHERE lead_id = ?`, leadID)

	var o model.Outreach
	var followUps, personalization sql.NullString
	err := row.Scan(&o.ID, &o.LeadID, &o.Subject, &o.Message, &followUps, &personalization, &o.Fallback, &o.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan outreach")
	}
	if followUps.Valid && followUps.String != "" {
		if err := json.Unmarshal([]byte(followUps.String), &o.FollowUps); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal follow ups")
		}
	}
	if err := unmarshalList(personalization, &o.Personalization); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal personalization")
	}
	return &o, nil
}

func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{StatusCounts: make(map[string]int)}

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT COUNT(*), COALESCE(AVG(qualification_score), 0),
			COALESCE(SUM(CASE WHEN qualification_score >= %f THEN 1 ELSE 0 END), 0)
		 FROM leads`, model.DashboardQualifiedThreshold))
	if err := row.Scan(&stats.TotalLeads, &stats.AverageScore, &stats.QualifiedLeads); err != nil {
		return nil, eris.Wrap(err, "sqlite: lead stats")
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&stats.TotalCompanies); err != nil {
		return nil, eris.Wrap(err, "sqlite: company count")
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&stats.TotalEvents); err != nil {
		return nil, eris.Wrap(err, "sqlite: event count")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: status counts")
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan status count")
		}
		stats.StatusCounts[status] = n
	}
	return stats, eris.Wrap(rows.Err(), "sqlite: status counts iterate")
}

func (s *SQLiteStore) ExportLeads(ctx context.Context) ([]ExportedLead, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT leads.id, companies.name, companies.industry, companies.size, companies.location,
			companies.website, companies.source_event, leads.qualification_score, leads.status,
			leads.priority, leads.rationale, COALESCE(outreach.subject, ''), leads.created_at
		 FROM leads
		 JOIN companies ON companies.id = leads.company_id
		 LEFT JOIN outreach ON outreach.lead_id = leads.id
		 ORDER BY leads.qualification_score DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: export leads")
	}
	defer rows.Close()

	var out []ExportedLead
	for rows.Next() {
		var e ExportedLead
		var createdAt time.Time
		if err := rows.Scan(&e.LeadID, &e.CompanyName, &e.Industry, &e.Size, &e.Location,
			&e.Website, &e.SourceEvent, &e.QualificationScore, &e.Status, &e.Priority,
			&e.Rationale, &e.OutreachSubject, &createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan exported lead")
		}
		e.CreatedAt = createdAt.Format(time.RFC3339)
		out = append(out, e)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: export leads iterate")
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	for _, table := range []string{"outreach", "leads", "stakeholders", "companies", "events"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", table)
		}
	}
	return nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func marshalList(list []string) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func unmarshalList(ns sql.NullString, dst *[]string) error {
	if !ns.Valid || ns.String == "" || ns.String == "[]" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), dst)
}

func scanEvent(row scannable) (*model.Event, error) {
	var ev model.Event
	var exhibitors sql.NullString
	err := row.Scan(&ev.ID, &ev.Name, &ev.Date, &ev.Location, &ev.Industry,
		&ev.Description, &ev.Website, &exhibitors, &ev.RelevanceScore, &ev.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan event")
	}
	if err := unmarshalList(exhibitors, &ev.Exhibitors); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal exhibitors")
	}
	return &ev, nil
}

func scanCompany(row scannable) (*model.Company, error) {
	var c model.Company
	var technologies, news, contacts sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Size, &c.Revenue,
		&c.Location, &c.Description, &c.LinkedInURL, &technologies, &news, &contacts,
		&c.QualificationScore, &c.SourceEvent, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan company")
	}
	if err := unmarshalList(technologies, &c.Technologies); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal technologies")
	}
	if err := unmarshalList(news, &c.RecentNews); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal recent news")
	}
	if contacts.Valid && contacts.String != "" && contacts.String != "null" {
		if err := json.Unmarshal([]byte(contacts.String), &c.Contacts); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal contacts")
		}
	}
	return &c, nil
}

func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	err := row.Scan(&l.ID, &l.EventID, &l.CompanyID, &l.StakeholderID, &l.QualificationScore,
		&l.Rationale, &l.Status, &l.Priority, &l.OutreachSubject, &l.OutreachMessage,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan lead")
	}
	return &l, nil
}
