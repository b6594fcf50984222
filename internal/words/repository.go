package words

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository stores corpus words in the SQLite `words` table
// (schema in assets/migrations). The game never queries it directly:
// Load reads everything into a Corpus at startup.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

// Import normalizes and inserts list, ignoring invalid entries and words
// already stored. Returns how many rows were added.
func (r *Repository) Import(ctx context.Context, list []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word, length) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, raw := range list {
		w, ok := Normalize(raw)
		if !ok {
			continue
		}
		res, err := stmt.ExecContext(ctx, w, len(w))
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return added, nil
}

// List returns every stored word in insertion order.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT word FROM words ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Load builds a Corpus from the stored words.
func (r *Repository) Load(ctx context.Context) (*Corpus, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return NewCorpus(list)
}
