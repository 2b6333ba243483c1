package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestGauge_BeginDoneAndPeak(t *testing.T) {
	var g requestGauge

	doneA := g.Begin()
	doneB := g.Begin()
	assert.Equal(t, int64(2), g.Active())

	doneA()
	doneA() // second call is a no-op
	assert.Equal(t, int64(1), g.Active())

	doneB()
	assert.Equal(t, int64(0), g.Active())
	assert.Equal(t, int64(2), g.Peak())
}

func TestRequestGauge_DrainWaitsForDone(t *testing.T) {
	var g requestGauge
	done := g.Begin()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result := make(chan error, 1)
	go func() { result <- g.Drain(ctx, 5*time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	done()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Drain did not return after the last request finished")
	}
}

func TestRequestGauge_DrainHonoursContext(t *testing.T) {
	var g requestGauge
	g.Begin()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Drain(ctx, 5*time.Millisecond)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRequestGauge_DrainIdleReturnsImmediately(t *testing.T) {
	var g requestGauge
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, g.Drain(ctx, time.Hour))
}
