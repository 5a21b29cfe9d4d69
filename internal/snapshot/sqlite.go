package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gitpress/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Replace(ctx context.Context, files []StoredFile, fetchedAt time.Time) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM feed_snapshot`); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		for _, f := range files {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO feed_snapshot (file_name, raw_content, fetched_at) VALUES (?, ?, ?)
			`, f.FileName, f.RawContent, fetchedAt.UTC().Unix())
			if err != nil {
				return fmt.Errorf("failed to insert snapshot[%s]: %w", f.FileName, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]StoredFile, time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT file_name, raw_content, fetched_at FROM feed_snapshot ORDER BY file_name DESC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	defer rows.Close()

	var files []StoredFile
	var fetchedUnix int64
	for rows.Next() {
		var f StoredFile
		if err := rows.Scan(&f.FileName, &f.RawContent, &fetchedUnix); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	if files == nil {
		return nil, time.Time{}, nil
	}
	return files, time.Unix(fetchedUnix, 0).UTC(), nil
}
