package adapter

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
)

// connectivityMonitor probes the sync server's health endpoint on a fixed
// interval and publishes transitions to subscribers. The online flag starts
// pessimistic (offline) until the first successful probe.
type connectivityMonitor struct {
	client   *resty.Client
	logger   *logger.Logger
	interval time.Duration

	online atomic.Bool
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	subs []chan bool
}

// NewConnectivityMonitor constructs a [ConnectivityGate] probing the
// configured server and starts its probe loop immediately.
func NewConnectivityMonitor(cfg config.ClientAdapter, log *logger.Logger) ConnectivityGate {
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.ServerURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	m := &connectivityMonitor{
		client:   cli,
		logger:   log,
		interval: interval,
		cancel:   cancel,
	}

	m.wg.Add(1)
	go m.loop(ctx)

	return m
}

func (m *connectivityMonitor) IsOnline() bool {
	return m.online.Load()
}

func (m *connectivityMonitor) Subscribe() <-chan bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	// buffered so a slow consumer never blocks the probe loop
	ch := make(chan bool, 4)
	m.subs = append(m.subs, ch)
	return ch
}

func (m *connectivityMonitor) Close() {
	m.cancel()
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
}

func (m *connectivityMonitor) loop(ctx context.Context) {
	defer m.wg.Done()

	m.probe(ctx)

	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.probe(ctx)
		}
	}
}

func (m *connectivityMonitor) probe(ctx context.Context) {
	resp, err := m.client.R().SetContext(ctx).Head("/api/health")
	up := err == nil && resp.StatusCode() < 500

	if m.online.Swap(up) == up {
		// no transition, nothing to publish
		return
	}

	m.logger.Info().
		Str("func", "connectivityMonitor.probe").
		Bool("online", up).
		Msg("connectivity transition")

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- up:
		default:
			// subscriber buffer full, it will catch up on the next transition
		}
	}
}
