package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// EvaluationEvent announces a completed evaluation to downstream consumers.
type EvaluationEvent struct {
	ID          string    `json:"id"`
	GradeLevel  string    `json:"grade_level"`
	Letter      string    `json:"letter"`
	Score       float64   `json:"score"`
	WordCount   int       `json:"word_count"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// EvaluationPublisher delivers evaluation events.
type EvaluationPublisher interface {
	Publish(ctx context.Context, event EvaluationEvent) error
}

type natsEvaluationPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSEvaluationPublisher publishes evaluation events on the given subject.
func NewNATSEvaluationPublisher(conn *nats.Conn, subject string) EvaluationPublisher {
	return &natsEvaluationPublisher{conn: conn, subject: subject}
}

func (p *natsEvaluationPublisher) Publish(ctx context.Context, event EvaluationEvent) error {
	if p.conn == nil || p.subject == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := event.payload()
	if err != nil {
		return err
	}

	return p.conn.Publish(p.subject, payload)
}

func (e EvaluationEvent) payload() ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode evaluation event: %w", err)
	}
	return payload, nil
}
