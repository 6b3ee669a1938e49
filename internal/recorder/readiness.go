package recorder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zoobzio/clockz"
)

const readinessPollInterval = 2 * time.Second

// ReadinessProbe polls an HTTP health endpoint until it answers 2xx.
type ReadinessProbe struct {
	URL      string
	Client   *http.Client
	Clock    clockz.Clock
	Interval time.Duration
}

// Wait polls until the endpoint is healthy or timeout elapses. It returns
// the number of attempts made.
func (p ReadinessProbe) Wait(ctx context.Context, timeout time.Duration) (int, error) {
	if p.URL == "" {
		return 0, errors.New("readiness: missing url")
	}
	clock := p.Clock
	if clock == nil {
		clock = clockz.RealClock
	}
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	interval := p.Interval
	if interval <= 0 {
		interval = readinessPollInterval
	}

	waitCtx, cancel := clock.WithTimeout(ctx, timeout)
	defer cancel()

	attempts := 0
	var lastErr error
	for {
		attempts++
		status, err := p.probe(waitCtx, client)
		if err == nil && status >= 200 && status < 300 {
			return attempts, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("status %d", status)
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return attempts, ctx.Err()
			}
			return attempts, fmt.Errorf("readiness: not healthy after %s: %w", timeout, lastErr)
		case <-clock.After(interval):
		}
	}
}

func (p ReadinessProbe) probe(ctx context.Context, client *http.Client) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
