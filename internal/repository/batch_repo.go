package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"solar_cleaner/internal/models"

	"github.com/google/uuid"
)

type BatchSQLite struct {
	db *sql.DB
}

func NewBatchSQLite(db *sql.DB) *BatchSQLite { return &BatchSQLite{db: db} }

const (
	insertBatchSQL = `INSERT INTO batches (id, name, name_fold, batch_date, damage_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	insertImageSQL = `INSERT INTO batch_images (id, batch_id, position, url, damage_count) VALUES (?, ?, ?, ?, ?)`

	selectBatchByIDSQL = `SELECT id, name, batch_date, damage_count FROM batches WHERE id = ?`
	selectImagesSQL    = `SELECT id, batch_id, url, damage_count FROM batch_images WHERE batch_id IN (%s) ORDER BY batch_id, position`

	countImagesSQL  = `SELECT COUNT(*) FROM batch_images`
	countBatchesSQL = `SELECT COUNT(*) FROM batches`

	batchSearchCond = `(name_fold LIKE ? ESCAPE '\' OR batch_date LIKE ? ESCAPE '\')`
	batchOrder      = ` ORDER BY batch_date DESC, name ASC, id ASC`
)

// Insert stores a batch and its images in one transaction. Missing ids are generated.
func (r *BatchSQLite) Insert(ctx context.Context, b models.Batch) (err error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, insertBatchSQL, b.ID, b.Name, foldName(b.Name), b.Date, b.DamageCount, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert batch %q: %w", b.ID, err)
	}
	for i, img := range b.Images {
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		if _, err = tx.ExecContext(ctx, insertImageSQL, img.ID, b.ID, i, img.URL, img.DamageCount); err != nil {
			return fmt.Errorf("insert image %d of batch %q: %w", i, b.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit batch %q: %w", b.ID, err)
	}
	return nil
}

// Get returns one batch with its images, or ErrNotFound.
func (r *BatchSQLite) Get(ctx context.Context, id string) (models.Batch, error) {
	var b models.Batch
	err := r.db.QueryRowContext(ctx, selectBatchByIDSQL, id).Scan(&b.ID, &b.Name, &b.Date, &b.DamageCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Batch{}, ErrNotFound
		}
		return models.Batch{}, fmt.Errorf("select batch %q: %w", id, err)
	}

	batches := []models.Batch{b}
	if err := r.attachImages(ctx, batches); err != nil {
		return models.Batch{}, err
	}
	return batches[0], nil
}

// Search returns one window of batches matching search (case-insensitive
// substring of name or date) and the total number of matches.
func (r *BatchSQLite) Search(ctx context.Context, search string, limit, offset int) ([]models.Batch, int, error) {
	var (
		where string
		args  []any
	)
	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + escapeLike(foldName(s)) + "%"
		where = " WHERE " + batchSearchCond
		args = append(args, pattern, pattern)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countBatchesSQL+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count batches: %w", err)
	}

	q := `SELECT id, name, batch_date, damage_count FROM batches` + where + batchOrder + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("select batches: %w", err)
	}
	defer rows.Close()

	out := make([]models.Batch, 0, limit)
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.Date, &b.DamageCount); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachImages(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// CountImages returns the number of captured images across all batches.
func (r *BatchSQLite) CountImages(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countImagesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return n, nil
}

// Count returns the number of stored batches.
func (r *BatchSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countBatchesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}

// attachImages loads images for the given batches with a single query.
func (r *BatchSQLite) attachImages(ctx context.Context, batches []models.Batch) error {
	if len(batches) == 0 {
		return nil
	}

	idx := make(map[string]int, len(batches))
	args := make([]any, 0, len(batches))
	for i := range batches {
		batches[i].Images = []models.BatchImage{}
		idx[batches[i].ID] = i
		args = append(args, batches[i].ID)
	}

	placeholders := "?" + strings.Repeat(", ?", len(batches)-1)
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(selectImagesSQL, placeholders), args...)
	if err != nil {
		return fmt.Errorf("select batch images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			img     models.BatchImage
			batchID string
		)
		if err := rows.Scan(&img.ID, &batchID, &img.URL, &img.DamageCount); err != nil {
			return err
		}
		if i, ok := idx[batchID]; ok {
			batches[i].Images = append(batches[i].Images, img)
		}
	}
	return rows.Err()
}

// foldName is the case folding applied to stored names and search text alike.
func foldName(s string) string { return strings.ToLower(s) }

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
