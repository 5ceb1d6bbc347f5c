package bus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"predixaai-alerts/internal/pipeline"
)

const DefaultAlertSubject = "alert.raised"

// AlertEvent is the JSON payload published for every persisted alert.
type AlertEvent struct {
	ID       string    `json:"id"`
	AlertID  int64     `json:"alertId"`
	Category string    `json:"category"`
	Device   string    `json:"device"`
	Minutes  float64   `json:"minutes"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raisedAt"`
}

func NewAlertEvent(alert pipeline.Alert) AlertEvent {
	return AlertEvent{
		ID:       uuid.NewString(),
		AlertID:  alert.ID,
		Category: alert.Category.String(),
		Device:   alert.Device,
		Minutes:  alert.Minutes,
		Message:  alert.Message,
		RaisedAt: alert.RaisedAt,
	}
}

type Publisher struct {
	Conn    *nats.Conn
	Subject string
}

func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("pdm"))
	if err != nil {
		return nil, err
	}
	if subject == "" {
		subject = DefaultAlertSubject
	}
	return &Publisher{Conn: conn, Subject: subject}, nil
}

func (p *Publisher) Close() {
	if p.Conn != nil {
		p.Conn.Drain()
		p.Conn.Close()
	}
}

func (p *Publisher) Publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.Conn.Publish(subject, data)
}

func (p *Publisher) PublishAlert(ctx context.Context, alert pipeline.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.Publish(p.Subject, NewAlertEvent(alert))
}
