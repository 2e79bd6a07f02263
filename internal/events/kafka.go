package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaConfig configures both the publisher and the source.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
	Partitions    int32
	Replication   int16
}

// EnsureTopic creates the topic when it does not exist yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, cfg KafkaConfig) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, cfg.Partitions, cfg.Replication, nil, cfg.Topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// KafkaPublisher produces ArtefactPublished records keyed by artefact id.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects and ensures the topic exists.
func NewKafkaPublisher(ctx context.Context, cfg KafkaConfig) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	if err := EnsureTopic(ctx, client, cfg); err != nil {
		client.Close()
		return nil, err
	}
	return &KafkaPublisher{client: client, topic: cfg.Topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt ArtefactPublished) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal artefact published: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(evt.ArtefactID.String()),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce artefact published: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// KafkaSource consumes ArtefactPublished records as part of a consumer group.
// Offsets are committed only after every record of a fetch has been handled,
// so a crash redelivers rather than drops.
type KafkaSource struct {
	client *kgo.Client
	logger *slog.Logger
}

func NewKafkaSource(cfg KafkaConfig, logger *slog.Logger) (*KafkaSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.ConsumerGroup),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.DisableAutoCommit(),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return &KafkaSource{client: client, logger: logger}, nil
}

// Run polls until ctx is cancelled. Undecodable records and handler errors
// are logged and committed past.
func (s *KafkaSource) Run(ctx context.Context, handle Handler) error {
	for {
		fetches := s.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			s.logger.ErrorContext(ctx, "kafka fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})

		fetches.EachRecord(func(rec *kgo.Record) {
			var evt ArtefactPublished
			if err := json.Unmarshal(rec.Value, &evt); err != nil {
				s.logger.ErrorContext(ctx, "undecodable artefact published record",
					"partition", rec.Partition,
					"offset", rec.Offset,
					"error", err,
				)
				return
			}
			if err := handle(ctx, evt); err != nil {
				s.logger.ErrorContext(ctx, "event handler failed",
					"artefact_id", evt.ArtefactID.String(),
					"partition", rec.Partition,
					"offset", rec.Offset,
					"error", err,
				)
			}
		})

		if err := s.client.CommitUncommittedOffsets(ctx); err != nil && ctx.Err() == nil {
			s.logger.ErrorContext(ctx, "kafka commit failed", "error", err)
		}
	}
}

func (s *KafkaSource) Close() {
	s.client.Close()
}
