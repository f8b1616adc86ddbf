package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
)

func TestInstrument_CountsCallsAndFailures(t *testing.T) {
	m := New(prometheus.NewRegistry())

	mock := llm.NewMockProvider()
	mock.SetFallback("ok")
	mock.FailTimes(1, errors.New("boom"))

	wrapped := Instrument(mock, m)

	_, err := wrapped.Complete(context.Background(), "first")
	assert.Error(t, err)

	resp, err := wrapped.Complete(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LLMCallsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMFailuresTotal))
	assert.Equal(t, "mock", wrapped.Name())
	assert.Equal(t, "scripted", wrapped.Model())
}
