package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"blanket_warmer/internal/models"
)

type SampleSQLite struct {
	db *sql.DB
}

func NewSampleSQLite(db *sql.DB) *SampleSQLite {
	return &SampleSQLite{db: db}
}

const (
	insertSampleSQL = `
		INSERT INTO temperature_samples (taken_at, blanket_avg_c, body_c)
		VALUES (?, ?, ?)
	`

	// newest first, flipped back to chronological order in Recent
	selectRecentSamplesSQL = `
		SELECT seq, taken_at, blanket_avg_c, body_c
		FROM temperature_samples
		ORDER BY seq DESC
		LIMIT ?
	`
)

// Append stores a sample. Seq is assigned by the database; a zero TakenAt
// becomes now.
func (r *SampleSQLite) Append(ctx context.Context, s models.Sample) error {
	takenAt := s.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	} else {
		takenAt = takenAt.UTC()
	}
	if _, err := r.db.ExecContext(ctx, insertSampleSQL, takenAt, s.BlanketAvgC, s.BodyC); err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

func (r *SampleSQLite) Recent(ctx context.Context, limit int) ([]models.Sample, error) {
	if limit <= 0 {
		return []models.Sample{}, nil
	}
	rows, err := r.db.QueryContext(ctx, selectRecentSamplesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	out := make([]models.Sample, 0, limit)
	for rows.Next() {
		var s models.Sample
		if err := rows.Scan(&s.Seq, &s.TakenAt, &s.BlanketAvgC, &s.BodyC); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s.TakenAt = s.TakenAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
