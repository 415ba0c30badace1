package rentbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/rentbook"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/testutil/storefake"
	"github.com/readhall/circulation-go/testutil/testdoubles"
)

func Test_Handle_EmitsTelemetry_OnSuccess(t *testing.T) {
	// arrange
	store := storefake.New()
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()
	logger := testdoubles.NewLoggerSpy()

	userID := uuid.New()
	bookID := uuid.New()
	store.SeedUser(core.User{ID: userID, Email: "m@example.com", Role: core.RoleUser, IsActive: true, Version: 1})
	store.SeedBook(core.Book{ID: bookID, Title: "T", Author: "A", TotalCopies: 1, AvailableCopies: 1, Version: 1})

	handler := rentbook.NewCommandHandler(store,
		rentbook.WithMetrics(metrics),
		rentbook.WithTracing(tracing),
		rentbook.WithLogging(logger),
	)

	// act
	_, err := handler.Handle(context.Background(), rentbook.BuildCommand(uuid.New(), userID, bookID, time.Now()))

	// assert
	require.NoError(t, err)

	assert.Equal(t, 1,
		metrics.CounterIncrements(shell.CommandHandlerCallsMetric, shell.LogAttrStatus, shell.StatusSuccess))
	assert.Len(t, metrics.DurationRecords(shell.CommandHandlerDurationMetric), 1)

	spans := tracing.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.SpanNameCommandHandle, spans[0].Name)
	assert.Equal(t, shell.StatusSuccess, spans[0].Status)
	assert.True(t, spans[0].Finished)

	infoMessages := logger.MessagesAt("info")
	assert.Contains(t, infoMessages, shell.LogMsgCommandStarted)
	assert.Contains(t, infoMessages, shell.LogMsgCommandCompleted)
}

func Test_Handle_EmitsTelemetry_OnBusinessRejection(t *testing.T) {
	// arrange
	store := storefake.New()
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()
	logger := testdoubles.NewLoggerSpy()

	handler := rentbook.NewCommandHandler(store,
		rentbook.WithMetrics(metrics),
		rentbook.WithTracing(tracing),
		rentbook.WithLogging(logger),
	)

	// act
	_, err := handler.Handle(context.Background(),
		rentbook.BuildCommand(uuid.New(), uuid.New(), uuid.New(), time.Now()))

	// assert
	require.ErrorIs(t, err, core.ErrUserNotFound)

	assert.Equal(t, 1,
		metrics.CounterIncrements(shell.CommandHandlerCallsMetric, shell.LogAttrStatus, shell.StatusError))

	spans := tracing.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.StatusError, spans[0].Status)

	assert.Contains(t, logger.MessagesAt("error"), shell.LogMsgCommandFailed)
}
