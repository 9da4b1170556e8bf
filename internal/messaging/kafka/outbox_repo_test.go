package kafka_test

import (
	"context"
	"testing"

	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	EmployeeID string `json:"employee_id"`
}

func TestNewOutboxEvent(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")

	event, err := kafka.NewOutboxEvent(ctx, "employee", "e-1", "employee.created", "timeclock.employee.v1", samplePayload{EmployeeID: "e-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"employee_id":"e-1"}`, event.Payload)
	assert.NoError(t, kafka.ValidateOutboxEvent(event))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "1", Topic: "t", Payload: "{}", Status: kafka.OutboxStatusPending}

	tests := []struct {
		name   string
		mutate func(*kafka.OutboxEvent)
	}{
		{"missing id", func(e *kafka.OutboxEvent) { e.ID = "" }},
		{"missing topic", func(e *kafka.OutboxEvent) { e.Topic = "" }},
		{"missing payload", func(e *kafka.OutboxEvent) { e.Payload = "" }},
		{"bad status", func(e *kafka.OutboxEvent) { e.Status = "queued" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			assert.Error(t, kafka.ValidateOutboxEvent(e))
		})
	}
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := kafka.NewOutboxRepository(db)
	ctx := context.Background()

	first, err := kafka.NewOutboxEvent(ctx, "time_entry", "t-1", "attendance.check_in", "timeclock.attendance.v1", samplePayload{})
	require.NoError(t, err)
	second, err := kafka.NewOutboxEvent(ctx, "time_entry", "t-2", "attendance.check_out", "timeclock.attendance.v1", samplePayload{})
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	pending, err := repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, repo.MarkSent(ctx, first.ID))
	require.NoError(t, repo.MarkFailed(ctx, second.ID, "broker down"))

	// the failed row backs off, so nothing is due right now
	pending, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.Equal(t, int64(1), testutil.Count(t, db, "outbox_events", "status = ?", kafka.OutboxStatusSent))
	assert.Equal(t, int64(1), testutil.Count(t, db, "outbox_events", "status = ? AND retry_count = 1", kafka.OutboxStatusFailed))
}

func TestOutboxRepository_WithTxRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repo := kafka.NewOutboxRepository(db)
	ctx := context.Background()

	event, err := kafka.NewOutboxEvent(ctx, "employee", "e-1", "employee.created", "timeclock.employee.v1", samplePayload{})
	require.NoError(t, err)

	tx := db.Begin()
	require.NoError(t, repo.WithTx(tx).Create(ctx, event))
	require.NoError(t, tx.Rollback().Error)

	assert.Equal(t, int64(0), testutil.Count(t, db, "outbox_events", ""))
}
