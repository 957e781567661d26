package billing

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher refreshes the provider access token on a fixed interval so
// that requests rarely hit an expired token. A failed refresh is retried
// once after a short delay; if the retry also fails the next tick tries
// again, and in-flight requests fall back to the 401 retry path.
type Refresher struct {
	client   *Client
	interval time.Duration
	logger   *zap.Logger
	ticker   *time.Ticker
	stop     chan struct{}
	done     chan struct{}
}

// NewRefresher starts the refresh loop. An initial refresh happens
// immediately so the client is usable right away.
func NewRefresher(ctx context.Context, client *Client, interval time.Duration, logger *zap.Logger) *Refresher {
	r := &Refresher{
		client:   client,
		interval: interval,
		logger:   logger,
		ticker:   time.NewTicker(interval),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	r.refreshOnce(ctx)
	go r.run()
	return r
}

func (r *Refresher) run() {
	defer close(r.done)
	for {
		select {
		case <-r.ticker.C:
			r.refreshOnce(context.Background())
		case <-r.stop:
			return
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := r.client.RefreshToken(ctx)
	if err == nil {
		return
	}
	r.logger.Warn("billing token refresh failed, retrying", zap.Error(err))

	select {
	case <-time.After(2 * time.Second):
	case <-r.stop:
		return
	}
	if err := r.client.RefreshToken(ctx); err != nil {
		r.logger.Error("billing token refresh retry failed", zap.Error(err))
	}
}

// Stop halts the refresh loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.ticker.Stop()
	close(r.stop)
	<-r.done
}
