// Package pipeline turns a sensor reading into a formatted failure alert:
// scale, classify, regress, format, persist.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"predixaai-alerts/internal/sensor"
	"predixaai-alerts/internal/timefmt"
)

type Models interface {
	Scale(reading []float64) ([]float64, error)
	Classify(scaled []float64) (int, error)
	EstimateTime(scaled []float64) (float64, error)
}

type Appender interface {
	Append(ctx context.Context, message string) (int64, error)
}

type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert Alert) error
}

type Recorder interface {
	RecordOutcome(category string, persisted bool)
	RecordFailure(kind string)
}

// Alert is a persisted non-normal outcome.
type Alert struct {
	ID       int64
	Category Category
	Device   string
	Minutes  float64
	Message  string
	RaisedAt time.Time
}

type Outcome struct {
	Category Category
	// Minutes is set for every category, Normal Operation included.
	Minutes   float64
	Message   string
	Persisted bool
	AlertID   int64
}

const normalMessage = "🚨 Predicted: Normal Operation (No failure detected). 😊"

type Pipeline struct {
	Models    Models
	Log       Appender
	Publisher AlertPublisher
	Metrics   Recorder
	Logger    *slog.Logger
	Now       func() time.Time
}

func New(models Models, log Appender) *Pipeline {
	return &Pipeline{Models: models, Log: log}
}

// Predict runs the reading through the models and persists an alert for any
// non-normal category. The regressor runs for every category.
func (p *Pipeline) Predict(ctx context.Context, reading sensor.Reading) (Outcome, error) {
	out, err := p.predict(ctx, reading)
	if err != nil {
		kind, _ := KindOf(err)
		if p.Metrics != nil {
			p.Metrics.RecordFailure(string(kind))
		}
		p.logger().Error("prediction failed", slog.String("kind", string(kind)), slog.String("reading", reading.String()), slog.String("error", err.Error()))
		return Outcome{}, err
	}
	if p.Metrics != nil {
		p.Metrics.RecordOutcome(out.Category.String(), out.Persisted)
	}
	p.logger().Info("prediction", slog.String("category", out.Category.String()), slog.Float64("minutes", out.Minutes), slog.Bool("persisted", out.Persisted), slog.Int64("alert_id", out.AlertID))
	return out, nil
}

func (p *Pipeline) predict(ctx context.Context, reading sensor.Reading) (Outcome, error) {
	scaled, err := p.Models.Scale(reading)
	if err != nil {
		return Outcome{}, wrap(KindScaling, err)
	}
	label, err := p.Models.Classify(scaled)
	if err != nil {
		return Outcome{}, wrap(KindPrediction, err)
	}
	category, err := CategoryFromLabel(label)
	if err != nil {
		return Outcome{}, wrap(KindPrediction, err)
	}
	minutes, err := p.Models.EstimateTime(scaled)
	if err != nil {
		return Outcome{}, wrap(KindPrediction, err)
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return Outcome{}, wrap(KindPrediction, fmt.Errorf("%w: %v", ErrNonFiniteEstimate, minutes))
	}

	device, ok := category.Device()
	if !ok {
		return Outcome{Category: category, Minutes: minutes, Message: normalMessage}, nil
	}

	message := AlertMessage(device, minutes)
	if p.Log == nil {
		return Outcome{}, wrap(KindStore, ErrStoreNotConfigured)
	}
	id, err := p.Log.Append(ctx, message)
	if err != nil {
		return Outcome{}, wrap(KindStore, err)
	}
	out := Outcome{Category: category, Minutes: minutes, Message: message, Persisted: true, AlertID: id}
	p.publish(ctx, Alert{ID: id, Category: category, Device: device, Minutes: minutes, Message: message, RaisedAt: p.now()})
	return out, nil
}

// publish is best effort: the alert log is the record, events are a copy.
func (p *Pipeline) publish(ctx context.Context, alert Alert) {
	if p.Publisher == nil {
		return
	}
	if err := p.Publisher.PublishAlert(ctx, alert); err != nil {
		p.logger().Warn("alert publish failed", slog.Int64("alert_id", alert.ID), slog.String("error", err.Error()))
	}
}

// AlertMessage is the text shown and stored for a non-normal outcome.
func AlertMessage(device string, minutes float64) string {
	return fmt.Sprintf("🚨 Attention! We've detected a potential %s failure.\nEstimated time to failure: %s .\nPlease check the system promptly to avoid disruptions. 😊", device, timefmt.Format(minutes))
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now()
}
