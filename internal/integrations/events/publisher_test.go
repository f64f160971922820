package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishAppointmentCreated(t *testing.T) {
	w := &recordingWriter{}
	p := newWithWriter(w, "appointment.created")

	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	err := p.PublishAppointmentCreated(context.Background(), AppointmentCreated{
		AppointmentID: 10,
		BusinessID:    3,
		SpecialistID:  7,
		ServiceIDs:    []int64{1, 2},
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Status:        "PENDING",
		TotalAmount:   decimal.NewFromInt(50000),
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "appointment.created", msg.Topic)
	assert.Equal(t, "3", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, EventAppointmentCreated, string(msg.Headers[1].Value))
	assert.NotEmpty(t, msg.Headers[0].Value)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, float64(10), decoded["appointmentId"])
	assert.Equal(t, "PENDING", decoded["status"])
}

func TestPublishAppointmentCreated_WriterError(t *testing.T) {
	p := newWithWriter(&recordingWriter{err: errors.New("broker unavailable")}, "t")

	err := p.PublishAppointmentCreated(context.Background(), AppointmentCreated{AppointmentID: 1})
	assert.ErrorIs(t, err, ErrPublish)
}
