package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// EventAppointmentCreated тип события о созданной записи
const EventAppointmentCreated = "appointment.created"

// ErrPublish возвращается, когда событие не удалось отправить
var ErrPublish = errors.New("events: failed to publish event")

// AppointmentCreated полезная нагрузка события appointment.created
type AppointmentCreated struct {
	AppointmentID int64           `json:"appointmentId"`
	BusinessID    int64           `json:"businessId"`
	BranchID      int64           `json:"branchId"`
	ClientID      int64           `json:"clientId"`
	SpecialistID  int64           `json:"specialistId"`
	ServiceIDs    []int64         `json:"serviceIds"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// messageWriter часть kafka.Writer, нужная публикатору
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует доменные события в Kafka
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher создает публикатор для списка брокеров
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, topic: topic}
}

func newWithWriter(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// PublishAppointmentCreated отправляет событие о созданной записи.
// Ключ сообщения - ID бизнеса, чтобы события одного бизнеса шли в одну партицию
func (p *KafkaPublisher) PublishAppointmentCreated(ctx context.Context, event AppointmentCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", ErrPublish, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.BusinessID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(EventAppointmentCreated)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: appointment %d: %w", ErrPublish, event.AppointmentID, err)
	}

	return nil
}

// Close закрывает соединения с брокерами
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka не настроена
type NoopPublisher struct{}

func (NoopPublisher) PublishAppointmentCreated(context.Context, AppointmentCreated) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
