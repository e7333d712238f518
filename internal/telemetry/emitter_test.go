package telemetry

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeSender struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (f *fakeSender) LogEvent(ctx context.Context, action string, details map[string]string) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, Event{Action: action, Details: details})
	return nil
}

func (f *fakeSender) delivered() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

func token(s string) func() string {
	return func() string { return s }
}

func TestLogViewDeliversEvent(t *testing.T) {
	sender := &fakeSender{}
	e := New(Options{Sender: sender, TokenSource: token("tok-1"), Logger: zerolog.Nop()})

	e.LogView("dashboard", "/dashboard")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	got := sender.delivered()
	if len(got) != 1 {
		t.Fatalf("delivered %d events, want 1", len(got))
	}
	if got[0].Action != "page_view" {
		t.Fatalf("action = %q, want %q", got[0].Action, "page_view")
	}
	if got[0].Details["page"] != "dashboard" || got[0].Details["url"] != "/dashboard" {
		t.Fatalf("details = %v", got[0].Details)
	}
}

func TestLogViewIsNoopWithoutToken(t *testing.T) {
	sender := &fakeSender{}
	e := New(Options{Sender: sender, TokenSource: token(""), Logger: zerolog.Nop()})

	e.LogView("dashboard", "/dashboard")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if got := sender.delivered(); len(got) != 0 {
		t.Fatalf("delivered %d events, want 0", len(got))
	}
}

func TestFullQueueDropsWithoutBlocking(t *testing.T) {
	block := make(chan struct{})
	sender := &fakeSender{block: block}
	e := New(Options{
		Sender:      sender,
		TokenSource: token("tok-1"),
		Logger:      zerolog.Nop(),
		QueueSize:   1,
		SendTimeout: 50 * time.Millisecond,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			e.LogView("dashboard", "/dashboard")
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Log blocked on a full queue")
	}

	close(block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestDeliveryFailureWritesDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	sender := &fakeSender{err: errors.New("backend down")}
	e := New(Options{
		Sender:         sender,
		TokenSource:    token("tok-1"),
		Logger:         zerolog.Nop(),
		DeadLetterPath: path,
	})

	e.LogView("editor", "/editor")
	e.Log("feature_used", map[string]string{"feature": "humanizer"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open dead-letter file: %v", err)
	}
	defer f.Close()

	var lines []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("parse dead-letter line: %v", err)
		}
		lines = append(lines, ev)
	}
	if len(lines) != 2 {
		t.Fatalf("dead-letter has %d lines, want 2", len(lines))
	}
	if lines[0].Action != "page_view" || lines[1].Action != "feature_used" {
		t.Fatalf("dead-letter actions = %q, %q", lines[0].Action, lines[1].Action)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	e := New(Options{Sender: &fakeSender{}, TokenSource: token("tok-1"), Logger: zerolog.Nop()})
	ctx := context.Background()
	if err := e.Close(ctx); err != nil {
		t.Fatalf("first Close returned error: %v", err)
	}
	if err := e.Close(ctx); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	// Logging after close must not panic on the closed channel.
	e.LogView("dashboard", "/dashboard")
}
