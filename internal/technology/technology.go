package technology

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("technology not found")

// Name is the list-endpoint projection the quiz browser expects.
type Name struct {
	Name string `json:"name"`
	ID   string `json:"_id"`
}

// Topic is one technology with its question bank. Questions are stored
// as free-form JSON and passed through untouched.
type Topic struct {
	Name      string          `json:"name"`
	Questions json.RawMessage `json:"questions"`
	ID        string          `json:"_id"`
}

type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// EnsureTable creates the technologies table if not exists (idempotent).
// One row per technology; the name doubles as the identifier.
func (r *Repo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS technologies (
  name TEXT PRIMARY KEY,
  questions JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *Repo) ListNames(ctx context.Context) ([]Name, error) {
	const q = `SELECT name FROM technologies ORDER BY name`
	var names []string
	if err := r.db.SelectContext(ctx, &names, q); err != nil {
		return nil, err
	}
	out := make([]Name, 0, len(names))
	for _, n := range names {
		out = append(out, Name{Name: n, ID: n})
	}
	return out, nil
}

func (r *Repo) GetByName(ctx context.Context, name string) (*Topic, error) {
	const q = `SELECT name, questions FROM technologies WHERE name=$1`
	var row struct {
		Name      string `db:"name"`
		Questions []byte `db:"questions"`
	}
	if err := r.db.GetContext(ctx, &row, q, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Topic{Name: row.Name, Questions: row.Questions, ID: row.Name}, nil
}
