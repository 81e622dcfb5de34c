package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// LogSink writes events to the structured log. Used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"actor_id", event.ActorID,
		"list_id", event.ListID,
		"subject_user_id", event.SubjectUserID,
		"item_id", event.ItemID,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}

// RecordPublisher is the broker-facing side of a sink.
type RecordPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaSink publishes events as JSON keyed by list id, so one list's trail stays
// ordered within a partition.
type KafkaSink struct {
	producer RecordPublisher
}

func NewKafkaSink(producer RecordPublisher) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Write(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.Publish(ctx, []byte(event.ListID), payload)
}
