// Package telemetry ships page-view events to the backend without ever
// getting in the caller's way: enqueueing never blocks, a full queue drops
// the event, and delivery failures land in a dead-letter sink instead of
// surfacing to the feature that triggered them.
package telemetry

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultQueueSize   = 64
	defaultSendTimeout = 10 * time.Second
)

// Sender delivers one event to the backend. *api.Client satisfies it.
type Sender interface {
	LogEvent(ctx context.Context, action string, details map[string]string) error
}

// Event is one queued telemetry record.
type Event struct {
	Action  string            `json:"action"`
	Details map[string]string `json:"details"`
	At      time.Time         `json:"at"`
}

// Options configures an Emitter.
type Options struct {
	Sender Sender
	// TokenSource supplies the current bearer token. Events are only
	// emitted for authenticated sessions; without a token LogView is a
	// no-op.
	TokenSource func() string
	Logger      zerolog.Logger
	// QueueSize bounds the in-flight buffer. Defaults to 64.
	QueueSize int
	// DeadLetterPath, when set, appends undeliverable events to a JSONL
	// file in addition to the warn log.
	DeadLetterPath string
	// SendTimeout bounds one delivery attempt. Defaults to 10s.
	SendTimeout time.Duration
}

// Emitter is the fire-and-forget event pipeline.
type Emitter struct {
	sender         Sender
	tokenSource    func() string
	logger         zerolog.Logger
	deadLetterPath string
	sendTimeout    time.Duration

	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// New constructs an Emitter and starts its delivery worker.
func New(opts Options) *Emitter {
	size := opts.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	timeout := opts.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	e := &Emitter{
		sender:         opts.Sender,
		tokenSource:    opts.TokenSource,
		logger:         opts.Logger,
		deadLetterPath: opts.DeadLetterPath,
		sendTimeout:    timeout,
		events:         make(chan Event, size),
		done:           make(chan struct{}),
	}
	go e.run()
	return e
}

// LogView records a page view for the current session. It never blocks and
// never reports an error: without a token it is a no-op, and when the queue
// is full the event is dropped.
func (e *Emitter) LogView(page, url string) {
	e.Log("page_view", map[string]string{"page": page, "url": url})
}

// Log enqueues an arbitrary event under the same contract as LogView.
func (e *Emitter) Log(action string, details map[string]string) {
	if e.tokenSource == nil || e.tokenSource() == "" {
		return
	}
	ev := Event{Action: action, Details: details, At: time.Now().UTC()}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.events <- ev:
	default:
		e.logger.Debug().Str("action", action).Msg("telemetry: queue full, event dropped")
	}
}

// Close stops accepting events and drains the queue. It returns early when
// ctx expires; whatever is still queued at that point is dead-lettered.
func (e *Emitter) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.events)
	e.mu.Unlock()

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Emitter) run() {
	defer close(e.done)
	for ev := range e.events {
		e.deliver(ev)
	}
}

func (e *Emitter) deliver(ev Event) {
	if e.sender == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.sendTimeout)
	defer cancel()
	if err := e.sender.LogEvent(ctx, ev.Action, ev.Details); err != nil {
		e.deadLetter(ev, err)
	}
}

// deadLetter records an undeliverable event. The warn log always fires; the
// JSONL file is best-effort and its own failures only get a debug line.
func (e *Emitter) deadLetter(ev Event, cause error) {
	e.logger.Warn().
		Err(cause).
		Str("action", ev.Action).
		Time("at", ev.At).
		Msg("telemetry: delivery failed")

	if e.deadLetterPath == "" {
		return
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return
	}
	f, err := os.OpenFile(e.deadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		e.logger.Debug().Err(err).Msg("telemetry: dead-letter file unavailable")
		return
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		e.logger.Debug().Err(err).Msg("telemetry: dead-letter write failed")
	}
}
