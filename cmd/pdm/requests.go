package main

import (
	"predixaai-alerts/internal/pipeline"
	"predixaai-alerts/internal/sensor"
)

type readingRequest struct {
	Values []float64 `json:"values"`
}

type readingResponse struct {
	Reading sensor.Reading `json:"reading"`
	Fields  []string       `json:"fields"`
	Message string         `json:"message,omitempty"`
}

type predictionResponse struct {
	Category  string  `json:"category"`
	Label     int     `json:"label"`
	Minutes   float64 `json:"minutes"`
	Message   string  `json:"message"`
	Persisted bool    `json:"persisted"`
	AlertID   int64   `json:"alertId,omitempty"`
}

func newPredictionResponse(out pipeline.Outcome) predictionResponse {
	return predictionResponse{
		Category:  out.Category.String(),
		Label:     int(out.Category),
		Minutes:   out.Minutes,
		Message:   out.Message,
		Persisted: out.Persisted,
		AlertID:   out.AlertID,
	}
}
