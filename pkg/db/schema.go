package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs table: one row per processed input file
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    input_path TEXT NOT NULL,
    url_column TEXT NOT NULL,
    traffic_column TEXT,
    total_rows INTEGER NOT NULL DEFAULT 0,
    weighted_rows INTEGER NOT NULL DEFAULT 0,
    skipped_weights INTEGER NOT NULL DEFAULT 0,
    total_traffic REAL NOT NULL DEFAULT 0,
    output_dir TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id);

-- Summary rows: every finished view of a run, rank is 1-based within a view
CREATE TABLE IF NOT EXISTS summary_rows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    view TEXT NOT NULL,
    rank INTEGER NOT NULL,
    key TEXT NOT NULL,
    total_traffic REAL NOT NULL,
    url_count INTEGER NOT NULL,
    avg_traffic REAL NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE (run_id, view, rank)
);

CREATE INDEX IF NOT EXISTS idx_summary_rows_run_view ON summary_rows(run_id, view);
`
