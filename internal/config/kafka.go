package config

import (
	"os"
	"strings"

	"github.com/segmentio/kafka-go"
)

// KafkaBrokerURLs returns the configured broker list, empty when event
// publishing is not configured.
func KafkaBrokerURLs() []string {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	return strings.Split(brokers, ",")
}

func NewKafkaWriter(topic string, brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
