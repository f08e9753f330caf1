package store

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS construction_sources (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    resource     TEXT NOT NULL,
    flow_type    TEXT NOT NULL,
    fiscal_year  TEXT NOT NULL,
    flow_source  TEXT NOT NULL,
    amount       REAL NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_lookup ON construction_sources(resource, fiscal_year, flow_type)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_flow_source ON construction_sources(flow_source)`,
	`CREATE TABLE IF NOT EXISTS construction_budget (
    budget_period    INTEGER NOT NULL,
    fund_code        TEXT NOT NULL,
    program_code     TEXT NOT NULL,
    project_id       TEXT NOT NULL,
    activity_id      TEXT NOT NULL,
    line_descr       TEXT,
    monetary_amount  REAL,
    PRIMARY KEY (budget_period, fund_code, program_code, project_id, activity_id)
)`,
	`CREATE TABLE IF NOT EXISTS construction_static_rows (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    resource     TEXT NOT NULL,
    flow_type    TEXT NOT NULL,
    fiscal_year  TEXT NOT NULL,
    flow_source  TEXT NOT NULL,
    amount       REAL NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS construction_settings (
    name   TEXT PRIMARY KEY,
    value  TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS projection_runs (
    run_id       TEXT PRIMARY KEY,
    started_at   TEXT NOT NULL,
    finished_at  TEXT NOT NULL,
    status       TEXT NOT NULL,
    message      TEXT NOT NULL DEFAULT '',
    entries      INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_started ON projection_runs(started_at)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS construction_sources (
    id           BIGSERIAL PRIMARY KEY,
    resource     VARCHAR(10) NOT NULL,
    flow_type    VARCHAR(50) NOT NULL,
    fiscal_year  VARCHAR(10) NOT NULL,
    flow_source  VARCHAR(50) NOT NULL,
    amount       DOUBLE PRECISION NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_lookup ON construction_sources(resource, fiscal_year, flow_type)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_flow_source ON construction_sources(flow_source)`,
	`CREATE TABLE IF NOT EXISTS construction_budget (
    budget_period    INTEGER NOT NULL,
    fund_code        VARCHAR(10) NOT NULL,
    program_code     VARCHAR(10) NOT NULL,
    project_id       VARCHAR(10) NOT NULL,
    activity_id      VARCHAR(10) NOT NULL,
    line_descr       VARCHAR(255),
    monetary_amount  DOUBLE PRECISION,
    PRIMARY KEY (budget_period, fund_code, program_code, project_id, activity_id)
)`,
	`CREATE TABLE IF NOT EXISTS construction_static_rows (
    id           BIGSERIAL PRIMARY KEY,
    resource     VARCHAR(10) NOT NULL,
    flow_type    VARCHAR(50) NOT NULL,
    fiscal_year  VARCHAR(10) NOT NULL,
    flow_source  VARCHAR(50) NOT NULL,
    amount       DOUBLE PRECISION NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS construction_settings (
    name   VARCHAR(64) PRIMARY KEY,
    value  TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS projection_runs (
    run_id       VARCHAR(36) PRIMARY KEY,
    started_at   TEXT NOT NULL,
    finished_at  TEXT NOT NULL,
    status       VARCHAR(16) NOT NULL,
    message      TEXT NOT NULL DEFAULT '',
    entries      INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_started ON projection_runs(started_at)`,
}
