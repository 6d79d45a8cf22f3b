package service

import (
	"context"
	"fmt"

	"blanket_warmer/internal/config"
	"blanket_warmer/internal/models"
	"blanket_warmer/internal/repository"
	"blanket_warmer/internal/widget"
)

// LiveSource supplies live temperatures keyed by gauge key.
type LiveSource interface {
	Temperatures() map[string]float64
}

// ReadingService answers gauge and chart queries. Without a live source the
// gauges show their configured values.
type ReadingService struct {
	gauges       []config.GaugeConfig
	historyLimit int
	sampleRepo   repository.SampleRepo
	live         LiveSource
}

func NewReadingService(cfg config.ReadingsConfig, sampleRepo repository.SampleRepo, live LiveSource) *ReadingService {
	return &ReadingService{
		gauges:       cfg.Gauges,
		historyLimit: cfg.HistoryLimit,
		sampleRepo:   sampleRepo,
		live:         live,
	}
}

func (s *ReadingService) Current(ctx context.Context) ([]models.GaugeView, error) {
	var temps map[string]float64
	if s.live != nil {
		temps = s.live.Temperatures()
	}

	out := make([]models.GaugeView, 0, len(s.gauges))
	for _, gc := range s.gauges {
		value := gc.Value
		if v, ok := temps[gc.Key]; ok {
			value = v
		}
		g, err := widget.NewGauge(gc.Label, value, gc.Max)
		if err != nil {
			return nil, fmt.Errorf("gauge %s: %w", gc.Key, err)
		}
		out = append(out, gaugeView(gc.Key, g))
	}
	return out, nil
}

// History returns the newest samples for the chart, oldest first.
func (s *ReadingService) History(ctx context.Context) ([]models.Sample, error) {
	samples, err := s.sampleRepo.Recent(ctx, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load sample history: %w", err)
	}
	return samples, nil
}

func gaugeView(key string, g widget.Gauge) models.GaugeView {
	tip := g.Needle()
	return models.GaugeView{
		Key:     key,
		Label:   g.Label,
		Value:   g.Value,
		Max:     g.Max,
		Angle:   g.Angle(),
		NeedleX: tip.X,
		NeedleY: tip.Y,
		Text:    g.Text(),
	}
}
