// snapshot.go persists the index to a SQLite file and restores it.
// The on-disk layout is an implementation detail: last writer wins, no
// cross-version compatibility promised.
package vectorindex

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const snapshotFile = "vectors.db"

// Save snapshots the index under dir, replacing any prior snapshot there.
func (ix *Index) Save(ctx context.Context, dir string) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 {
		return errors.New("nothing to persist")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	dbPath := filepath.Join(dir, snapshotFile)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entries (
			position INTEGER PRIMARY KEY,
			text TEXT NOT NULL,
			metadata TEXT NOT NULL,
			embedding BLOB NOT NULL
		);
		DELETE FROM entries;
	`); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (position, text, metadata, embedding)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, e := range ix.entries {
		metaJSON, err := json.Marshal(e.Doc.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		embJSON, err := json.Marshal(e.Vector)
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, i, e.Doc.Text, metaJSON, embJSON); err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load restores the index from a snapshot written by Save. A missing
// snapshot leaves the index untouched and returns nil.
func (ix *Index) Load(ctx context.Context, dir string) error {
	dbPath := filepath.Join(dir, snapshotFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT text, metadata, embedding FROM entries ORDER BY position
	`)
	if err != nil {
		return fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	var entries []entities.IndexEntry
	for rows.Next() {
		var text string
		var metaJSON, embJSON []byte
		if err := rows.Scan(&text, &metaJSON, &embJSON); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}

		var meta map[string]string
		if err := json.Unmarshal(metaJSON, &meta); err != nil {
			return fmt.Errorf("decoding metadata: %w", err)
		}
		var emb []float32
		if err := json.Unmarshal(embJSON, &emb); err != nil {
			return fmt.Errorf("decoding embedding: %w", err)
		}

		entries = append(entries, entities.IndexEntry{
			Vector: emb,
			Doc:    entities.Document{Text: text, Metadata: meta},
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dim = len(entries[0].Vector)
	ix.entries = entries
	return nil
}
