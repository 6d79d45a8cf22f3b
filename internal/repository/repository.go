package repository

import (
	"context"
	"database/sql"
	"time"

	"blanket_warmer/internal/models"
)

type SampleRepo interface {
	Append(ctx context.Context, s models.Sample) error
	// Recent returns the newest limit samples in chronological order.
	Recent(ctx context.Context, limit int) ([]models.Sample, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ControlEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ControlEvent, error)
}

type Repository struct {
	SampleRepo SampleRepo
	EventRepo  EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SampleRepo: NewSampleSQLite(db),
		EventRepo:  NewEventSQLite(db),
	}
}
