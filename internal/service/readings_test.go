package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"blanket_warmer/internal/config"
	"blanket_warmer/internal/models"
)

type fakeSampleRepo struct {
	samples  []models.Sample
	err      error
	gotLimit int
	appended []models.Sample
}

func (f *fakeSampleRepo) Append(ctx context.Context, s models.Sample) error {
	f.appended = append(f.appended, s)
	return f.err
}

func (f *fakeSampleRepo) Recent(ctx context.Context, limit int) ([]models.Sample, error) {
	f.gotLimit = limit
	return f.samples, f.err
}

type fixedLive map[string]float64

func (f fixedLive) Temperatures() map[string]float64 { return f }

func TestReadingService_Current_Static(t *testing.T) {
	cfg := config.ReadingsConfig{Gauges: config.DefaultGauges(), HistoryLimit: 8}
	svc := NewReadingService(cfg, &fakeSampleRepo{}, nil)

	got, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	heater := got[1]
	if heater.Key != "heater" || heater.Value != 50 || heater.Text != "50°C" {
		t.Errorf("heater: %+v", heater)
	}
	if heater.Angle != 150 {
		t.Errorf("heater angle = %v, want 150", heater.Angle)
	}
	if math.Abs(heater.NeedleX-(100+80*math.Cos(math.Pi*30/180))) > 1e-9 {
		t.Errorf("needle x = %v", heater.NeedleX)
	}
}

func TestReadingService_Current_LiveOverridesKnownKeys(t *testing.T) {
	cfg := config.ReadingsConfig{Gauges: config.DefaultGauges(), HistoryLimit: 8}
	svc := NewReadingService(cfg, &fakeSampleRepo{}, fixedLive{GaugeHeater: 30, "unknown": 1})

	got, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got[1].Value != 30 || got[1].Angle != 90 {
		t.Errorf("heater should follow live value: %+v", got[1])
	}
	if got[0].Value != 37 {
		t.Errorf("blanket without live value keeps configured: %+v", got[0])
	}
}

func TestReadingService_History(t *testing.T) {
	repo := &fakeSampleRepo{samples: []models.Sample{{Seq: 1}, {Seq: 2}}}
	svc := NewReadingService(config.ReadingsConfig{HistoryLimit: 8}, repo, nil)

	got, err := svc.History(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("History: %v, %v", got, err)
	}
	if repo.gotLimit != 8 {
		t.Errorf("limit = %d", repo.gotLimit)
	}

	repo.err = errors.New("db down")
	if _, err := svc.History(context.Background()); !errors.Is(err, repo.err) {
		t.Errorf("expected wrapped repo error, got %v", err)
	}
}
