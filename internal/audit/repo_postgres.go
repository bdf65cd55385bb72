package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends audit events to the audit_events table.
//
// Expected schema:
//
//	CREATE TABLE audit_events (
//	  id           uuid PRIMARY KEY,
//	  type         text NOT NULL,
//	  session_id   text,
//	  login        text,
//	  access_level text,
//	  path         text,
//	  target       text,
//	  ip_address   text,
//	  message      text,
//	  created_at   timestamptz NOT NULL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, type, session_id, login, access_level, path, target, ip_address, message, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.Type,
		e.SessionID,
		e.Login,
		e.AccessLevel,
		e.Path,
		e.Target,
		e.IPAddress,
		e.Message,
		e.CreatedAt,
	)
	return err
}
