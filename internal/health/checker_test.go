package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckProbesTheConfiguredURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewChecker(srv.URL, time.Minute, zap.NewNop())
	c.Check(context.Background())

	assert.Equal(t, int32(1), hits.Load())
}

func TestCheckSurvivesUnreachableTarget(t *testing.T) {
	c := NewChecker("http://127.0.0.1:1", time.Minute, zap.NewNop())

	// must not panic or error out of the loop
	c.Check(context.Background())
}

func TestRunStopsOnCancel(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewChecker(srv.URL, 10*time.Millisecond, zap.NewNop())

	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return hits.Load() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
