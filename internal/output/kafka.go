package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// VisitScheduledEvent is the message published for every scheduled site.
type VisitScheduledEvent struct {
	SiteName  string  `json:"site_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Subcon    string  `json:"subcon"`
	Team      string  `json:"team_number"`
	VisitDate string  `json:"visit_date"`
	EmittedAt int64   `json:"emitted_at"`
}

// KafkaSink publishes one VisitScheduledEvent per site, keyed by site name.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaSink(config *models.Config) (*KafkaSink, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokerList := strings.Split(config.KafkaBrokerList, ",")
	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	return &KafkaSink{producer: producer, topic: config.KafkaTopic}, nil
}

func (k *KafkaSink) WriteSchedule(_ context.Context, sites []*models.Site) error {
	now := time.Now().Unix()
	for _, s := range sites {
		event := VisitScheduledEvent{
			SiteName:  s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			City:      s.City,
			Subcon:    s.Subcon,
			Team:      s.Team,
			VisitDate: s.Date,
			EmittedAt: now,
		}
		msg, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event for %s: %w", s.Name, err)
		}
		_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
			Topic: k.topic,
			Key:   sarama.StringEncoder(s.Name),
			Value: sarama.ByteEncoder(msg),
		})
		if err != nil {
			return fmt.Errorf("failed to send event for %s: %w", s.Name, err)
		}
	}
	return nil
}

func (k *KafkaSink) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}
