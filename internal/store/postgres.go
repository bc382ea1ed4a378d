package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/instalily/leadgen/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock's pool
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the hottest store operations.
var preparedStatements = map[string]string{
	"get_company":       `SELECT id, created_at FROM companies WHERE lower(name) = lower($1)`,
	"get_lead":          `SELECT id, event_id, company_id, stakeholder_id, qualification_score, rationale, status, priority, outreach_subject, outreach_message, notes, created_at, updated_at FROM leads WHERE id = $1`,
	"update_lead":       `UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3`,
	"get_outreach":      `SELECT id, lead_id, subject, message, follow_ups, personalization, fallback, generated_at FROM outreach WHERE lead_id = $1`,
	"insert_outreach":   `INSERT INTO outreach (id, lead_id, subject, message, follow_ups, personalization, fallback, generated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	"count_leads_total": `SELECT COUNT(*) FROM leads`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (tests).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS events (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	date            TEXT,
	location        TEXT,
	industry        TEXT,
	description     TEXT,
	website         TEXT,
	exhibitors      JSONB,
	relevance_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS companies (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	website             TEXT,
	industry            TEXT,
	size                TEXT,
	revenue             TEXT,
	location            TEXT,
	description         TEXT,
	linkedin_url        TEXT,
	technologies        JSONB,
	recent_news         JSONB,
	contacts            JSONB,
	qualification_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	source_event        TEXT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
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
	pending              BOOLEAN NOT NULL DEFAULT false,
	decision_maker_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leads (
	id                  TEXT PRIMARY KEY,
	event_id            TEXT,
	company_id          TEXT NOT NULL REFERENCES companies(id),
	stakeholder_id      TEXT,
	qualification_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	rationale           TEXT,
	status              TEXT NOT NULL DEFAULT 'new',
	priority            TEXT,
	outreach_subject    TEXT,
	outreach_message    TEXT,
	notes               TEXT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS outreach (
	id              TEXT PRIMARY KEY,
	lead_id         TEXT NOT NULL UNIQUE REFERENCES leads(id),
	subject         TEXT NOT NULL,
	message         TEXT NOT NULL,
	follow_ups      JSONB,
	personalization JSONB,
	fallback        BOOLEAN NOT NULL DEFAULT false,
	generated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_name_lower ON companies (lower(name));
CREATE INDEX IF NOT EXISTS idx_stakeholders_company_id ON stakeholders(company_id);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(qualification_score);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_company_id ON leads(company_id);
CREATE INDEX IF NOT EXISTS idx_outreach_lead_id ON outreach(lead_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateEvent(ctx context.Context, ev model.Event) (*model.Event, error) {
	ev.ID = uuid.New().String()
	ev.CreatedAt = time.Now().UTC()

	exhibitors, err := json.Marshal(ev.Exhibitors)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal exhibitors")
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO events (id, name, date, location, industry, description, website, exhibitors, relevance_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (name) DO UPDATE SET
			date = excluded.date, location = excluded.location,
			description = excluded.description, website = excluded.website,
			exhibitors = excluded.exhibitors, relevance_score = excluded.relevance_score
		 RETURNING id`,
		ev.ID, ev.Name, ev.Date, ev.Location, ev.Industry, ev.Description,
		ev.Website, exhibitors, ev.RelevanceScore, ev.CreatedAt,
	)
	if err := row.Scan(&ev.ID); err != nil {
		return nil, eris.Wrapf(err, "postgres: upsert event %s", ev.Name)
	}
	return &ev, nil
}

func (s *PostgresStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, date, location, industry, description, website, exhibitors, relevance_score, created_at
		 FROM events WHERE id = $1`, id)
	return scanPGEvent(row)
}

func (s *PostgresStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, date, location, industry, description, website, exhibitors, relevance_score, created_at
		 FROM events ORDER BY relevance_score DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list events")
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		ev, err := scanPGEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list events iterate")
}

func (s *PostgresStore) UpsertCompany(ctx context.Context, c model.Company) (*model.Company, error) {
	now := time.Now().UTC()

	var existingID string
	var createdAt time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT id, created_at FROM companies WHERE lower(name) = lower($1)`, c.Name,
	).Scan(&existingID, &createdAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		c.ID = uuid.New().String()
		c.CreatedAt = now
	case err != nil:
		return nil, eris.Wrapf(err, "postgres: lookup company %s", c.Name)
	default:
		c.ID = existingID
		c.CreatedAt = createdAt
	}
	c.UpdatedAt = now

	technologies, err := json.Marshal(c.Technologies)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal technologies")
	}
	news, err := json.Marshal(c.RecentNews)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal recent news")
	}
	contacts, err := json.Marshal(c.Contacts)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal contacts")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO companies (id, name, website, industry, size, revenue, location, description,
			linkedin_url, technologies, recent_news, contacts, qualification_score, source_event, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (lower(name)) DO UPDATE SET
			website = excluded.website, industry = excluded.industry, size = excluded.size,
			revenue = excluded.revenue, location = excluded.location, description = excluded.description,
			linkedin_url = excluded.linkedin_url, technologies = excluded.technologies,
			recent_news = excluded.recent_news, contacts = excluded.contacts,
			qualification_score = excluded.qualification_score, source_event = excluded.source_event,
			updated_at = excluded.updated_at`,
		c.ID, c.Name, c.Website, c.Industry, c.Size, c.Revenue, c.Location, c.Description,
		c.LinkedInURL, technologies, news, contacts, c.QualificationScore, c.SourceEvent,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: upsert company %s", c.Name)
	}
	return &c, nil
}

const pgCompanySelect = `SELECT id, name, website, industry, size, revenue, location, description,
	linkedin_url, technologies, recent_news, contacts, qualification_score, source_event, created_at, updated_at
 FROM companies`

func (s *PostgresStore) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	row := s.pool.QueryRow(ctx, pgCompanySelect+` WHERE id = $1`, id)
	return scanPGCompany(row)
}

func (s *PostgresStore) ListCompanies(ctx context.Context, limit int) ([]model.Company, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		pgCompanySelect+` ORDER BY qualification_score DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		c, err := scanPGCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

func (s *PostgresStore) CreateStakeholder(ctx context.Context, st model.Stakeholder) (*model.Stakeholder, error) {
	st.ID = uuid.New().String()
	st.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO stakeholders (id, company_id, name, title, department, email, phone, linkedin, pending, decision_maker_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		st.ID, st.CompanyID, st.Name, st.Title, st.Department, st.Email, st.Phone,
		st.LinkedIn, st.Pending, st.DecisionMakerScore, st.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert stakeholder for company %s", st.CompanyID)
	}
	return &st, nil
}

func (s *PostgresStore) ListStakeholdersByCompany(ctx context.Context, companyID string) ([]model.Stakeholder, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company_id, name, title, department, email, phone, linkedin, pending, decision_maker_score, created_at
		 FROM stakeholders WHERE company_id = $1 ORDER BY created_at`, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list stakeholders")
	}
	defer rows.Close()

	var out []model.Stakeholder
	for rows.Next() {
		var st model.Stakeholder
		if err := rows.Scan(&st.ID, &st.CompanyID, &st.Name, &st.Title, &st.Department,
			&st.Email, &st.Phone, &st.LinkedIn, &st.Pending, &st.DecisionMakerScore, &st.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan stakeholder")
		}
		out = append(out, st)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list stakeholders iterate")
}

func (s *PostgresStore) CreateLead(ctx context.Context, l model.Lead) (*model.Lead, error) {
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

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads (id, event_id, company_id, stakeholder_id, qualification_score, rationale,
			status, priority, outreach_subject, outreach_message, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		l.ID, l.EventID, l.CompanyID, l.StakeholderID, l.QualificationScore, l.Rationale,
		string(l.Status), string(l.Priority), l.OutreachSubject, l.OutreachMessage, l.Notes,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert lead for company %s", l.CompanyID)
	}
	return &l, nil
}

const pgLeadSelect = `SELECT id, event_id, company_id, stakeholder_id, qualification_score, rationale,
	status, priority, outreach_subject, outreach_message, notes, created_at, updated_at
 FROM leads`

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx, pgLeadSelect+` WHERE id = $1`, id)
	return scanPGLead(row)
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, int, error) {
	filter = NormalizeFilter(filter)

	where := ` WHERE leads.qualification_score >= $1`
	args := []any{filter.MinScore}
	if filter.Status != "" {
		where += ` AND leads.status = $2`
		args = append(args, string(filter.Status))
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, eris.Wrap(err, "postgres: count leads")
	}

	var orderBy string
	switch filter.SortBy {
	case SortByCompanyName:
		orderBy = ` ORDER BY lower(companies.name) ASC`
	case SortByCreatedAt:
		orderBy = ` ORDER BY leads.created_at DESC`
	default:
		orderBy = ` ORDER BY leads.qualification_score DESC`
	}

	limitPos := len(args) + 1
	query := `SELECT leads.id, leads.event_id, leads.company_id, leads.stakeholder_id,
		leads.qualification_score, leads.rationale, leads.status, leads.priority,
		leads.outreach_subject, leads.outreach_message, leads.notes, leads.created_at, leads.updated_at
	 FROM leads JOIN companies ON companies.id = leads.company_id` +
		where + orderBy + placeholderLimit(limitPos)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var out []model.Lead
	for rows.Next() {
		l, err := scanPGLead(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *l)
	}
	return out, total, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update lead status %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "lead %s", id)
	}
	return nil
}

func (s *PostgresStore) CreateOutreach(ctx context.Context, o model.Outreach) (*model.Outreach, error) {
	o.ID = uuid.New().String()
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}

	followUps, err := json.Marshal(o.FollowUps)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal follow ups")
	}
	personalization, err := json.Marshal(o.Personalization)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal personalization")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO outreach (id, lead_id, subject, message, follow_ups, personalization, fallback, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.LeadID, o.Subject, o.Message, followUps, personalization, o.Fallback, o.GeneratedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert outreach for lead %s", o.LeadID)
	}
	return &o, nil
}

func (s *PostgresStore) GetOutreachByLead(ctx context.Context, leadID string) (*model.Outreach, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, lead_id, subject, message, follow_ups, personalization, fallback, generated_at
		 FROM outreach WHERE lead_id = $1`, leadID)

	var o model.Outreach
	var followUps, personalization []byte
	err := row.Scan(&o.ID, &o.LeadID, &o.Subject, &o.Message, &followUps, &personalization, &o.Fallback, &o.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan outreach")
	}
	if len(followUps) > 0 {
		if err := json.Unmarshal(followUps, &o.FollowUps); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal follow ups")
		}
	}
	if len(personalization) > 0 {
		if err := json.Unmarshal(personalization, &o.Personalization); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal personalization")
		}
	}
	return &o, nil
}

func (s *PostgresStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{StatusCounts: make(map[string]int)}

	row := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(qualification_score), 0),
			COALESCE(SUM(CASE WHEN qualification_score >= $1 THEN 1 ELSE 0 END), 0)
		 FROM leads`, model.DashboardQualifiedThreshold)
	if err := row.Scan(&stats.TotalLeads, &stats.AverageScore, &stats.QualifiedLeads); err != nil {
		return nil, eris.Wrap(err, "postgres: lead stats")
	}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&stats.TotalCompanies); err != nil {
		return nil, eris.Wrap(err, "postgres: company count")
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&stats.TotalEvents); err != nil {
		return nil, eris.Wrap(err, "postgres: event count")
	}

	rows, err := s.pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: status counts")
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan status count")
		}
		stats.StatusCounts[status] = n
	}
	return stats, eris.Wrap(rows.Err(), "postgres: status counts iterate")
}

func (s *PostgresStore) ExportLeads(ctx context.Context) ([]ExportedLead, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT leads.id, companies.name, companies.industry, companies.size, companies.location,
			companies.website, companies.source_event, leads.qualification_score, leads.status,
			leads.priority, leads.rationale, COALESCE(outreach.subject, ''), leads.created_at
		 FROM leads
		 JOIN companies ON companies.id = leads.company_id
		 LEFT JOIN outreach ON outreach.lead_id = leads.id
		 ORDER BY leads.qualification_score DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: export leads")
	}
	defer rows.Close()

	var out []ExportedLead
	for rows.Next() {
		var e ExportedLead
		var createdAt time.Time
		if err := rows.Scan(&e.LeadID, &e.CompanyName, &e.Industry, &e.Size, &e.Location,
			&e.Website, &e.SourceEvent, &e.QualificationScore, &e.Status, &e.Priority,
			&e.Rationale, &e.OutreachSubject, &createdAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan exported lead")
		}
		e.CreatedAt = createdAt.Format(time.RFC3339)
		out = append(out, e)
	}
	return out, eris.Wrap(rows.Err(), "postgres: export leads iterate")
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`TRUNCATE outreach, leads, stakeholders, companies, events`)
	return eris.Wrap(err, "postgres: clear")
}

func placeholderLimit(start int) string {
	// LIMIT/OFFSET placeholder positions depend on whether a status filter
	// was added.
	if start == 2 {
		return ` LIMIT $2 OFFSET $3`
	}
	return ` LIMIT $3 OFFSET $4`
}

func scanPGEvent(row pgx.Row) (*model.Event, error) {
	var ev model.Event
	var exhibitors []byte
	err := row.Scan(&ev.ID, &ev.Name, &ev.Date, &ev.Location, &ev.Industry,
		&ev.Description, &ev.Website, &exhibitors, &ev.RelevanceScore, &ev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan event")
	}
	if len(exhibitors) > 0 {
		if err := json.Unmarshal(exhibitors, &ev.Exhibitors); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal exhibitors")
		}
	}
	return &ev, nil
}

func scanPGCompany(row pgx.Row) (*model.Company, error) {
	var c model.Company
	var technologies, news, contacts []byte
	err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Size, &c.Revenue,
		&c.Location, &c.Description, &c.LinkedInURL, &technologies, &news, &contacts,
		&c.QualificationScore, &c.SourceEvent, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan company")
	}
	if len(technologies) > 0 {
		if err := json.Unmarshal(technologies, &c.Technologies); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal technologies")
		}
	}
	if len(news) > 0 {
		if err := json.Unmarshal(news, &c.RecentNews); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal recent news")
		}
	}
	if len(contacts) > 0 {
		if err := json.Unmarshal(contacts, &c.Contacts); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal contacts")
		}
	}
	return &c, nil
}

func scanPGLead(row pgx.Row) (*model.Lead, error) {
	var l model.Lead
	err := row.Scan(&l.ID, &l.EventID, &l.CompanyID, &l.StakeholderID, &l.QualificationScore,
		&l.Rationale, &l.Status, &l.Priority, &l.OutreachSubject, &l.OutreachMessage,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan lead")
	}
	return &l, nil
}
