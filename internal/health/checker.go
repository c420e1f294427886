package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Checker periodically GETs the server's own public URL and logs the
// outcome; some hosting platforms idle out processes that see no traffic.
type Checker struct {
	url      string
	interval time.Duration
	client   *http.Client
	log      *zap.Logger
}

func NewChecker(url string, interval time.Duration, log *zap.Logger) *Checker {
	return &Checker{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// Run checks on every tick until ctx is cancelled.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Check performs a single probe.
func (c *Checker) Check(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.log.Debug("health check: failed", zap.Error(err))
		return
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("health check: failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	status := "failed"
	if resp.StatusCode == http.StatusOK {
		status = "ok"
	}
	c.log.Debug("health check: " + status)
}
