package node

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
)

const (
	// EventDeployProcessed is emitted once a deploy has been executed.
	EventDeployProcessed = "DeployProcessed"

	maxEventBytes = 16 << 20
)

// Event is one message of the node's event stream.
type Event struct {
	// ID is the stream position, zero for messages without one.
	ID uint64
	// Type is the single top-level key of the payload, e.g. "DeployProcessed".
	Type string
	// Data is the value under Type.
	Data json.RawMessage
}

// Stream is a long-lived subscription to the node's server-sent event stream.
// It reconnects with exponential backoff and resumes from the last seen id.
type Stream struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger

	initialDelay time.Duration
	maxDelay     time.Duration

	lastID    atomic.Uint64
	connected atomic.Bool
}

// NewStream creates a stream for the given events URL.
// The default HTTP client has no timeout.
func NewStream(eventsURL string, opts ...Option) (*Stream, error) {
	if _, err := url.Parse(eventsURL); err != nil {
		return nil, fmt.Errorf("invalid event stream url: %w", err)
	}
	opts = append([]Option{WithHTTPClient(&http.Client{})}, opts...)
	s := applyOptions(opts)
	return &Stream{
		url:          eventsURL,
		httpClient:   s.httpClient,
		logger:       s.logger,
		initialDelay: s.initialDelay,
		maxDelay:     s.maxDelay,
	}, nil
}

// Connected reports whether the stream currently has an open connection.
func (s *Stream) Connected() bool {
	return s.connected.Load()
}

// LastID returns the id of the last event received.
func (s *Stream) LastID() uint64 {
	return s.lastID.Load()
}

// Run consumes the stream until ctx is cancelled, calling handle for every
// event. handle is called from a single goroutine and should not block for long.
func (s *Stream) Run(ctx context.Context, handle func(Event)) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialDelay
	b.MaxInterval = s.maxDelay
	b.MaxElapsedTime = 0
	b.Reset()

	for {
		connected, err := s.consume(ctx, handle)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			b.Reset()
		}

		wait := b.NextBackOff()
		metrics.StreamReconnects.Inc()
		s.logger.Warn("Event stream disconnected, reconnecting",
			zap.Error(err),
			zap.Duration("delay", wait),
			zap.Uint64("last_event_id", s.lastID.Load()))

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// consume opens one connection and reads it until it fails. The bool reports
// whether the connection was established.
func (s *Stream) consume(ctx context.Context, handle func(Event)) (bool, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return false, err
	}
	if last := s.lastID.Load(); last > 0 {
		q := u.Query()
		q.Set("start_from", strconv.FormatUint(last, 10))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	s.connected.Store(true)
	metrics.StreamConnected.Set(1)
	defer func() {
		s.connected.Store(false)
		metrics.StreamConnected.Set(0)
	}()
	s.logger.Info("Event stream connected", zap.String("url", u.String()))

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxEventBytes)

	var (
		data []byte
		id   uint64
	)
	for scanner.Scan() {
		line := scanner.Bytes()
		switch {
		case len(line) == 0:
			if len(data) > 0 {
				s.dispatch(data, id, handle)
			}
			data, id = data[:0], 0
		case bytes.HasPrefix(line, []byte("data:")):
			if len(data) > 0 {
				data = append(data, '\n')
			}
			data = append(data, bytes.TrimPrefix(bytes.TrimPrefix(line, []byte("data:")), []byte(" "))...)
		case bytes.HasPrefix(line, []byte("id:")):
			n, perr := strconv.ParseUint(string(bytes.TrimSpace(line[3:])), 10, 64)
			if perr == nil {
				id = n
			}
		}
		// Comments (":") and unknown fields are ignored.
	}
	if err := scanner.Err(); err != nil {
		return true, err
	}
	return true, fmt.Errorf("event stream closed by server")
}

func (s *Stream) dispatch(data []byte, id uint64, handle func(Event)) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil || len(env) != 1 {
		s.logger.Debug("Skipping unrecognised stream message", zap.ByteString("data", truncate(data, 256)))
		return
	}
	if id > 0 {
		s.lastID.Store(id)
	}
	for typ, body := range env {
		metrics.StreamEvents.WithLabelValues(typ).Inc()
		handle(Event{ID: id, Type: typ, Data: append(json.RawMessage(nil), body...)})
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
