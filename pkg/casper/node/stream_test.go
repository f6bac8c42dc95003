package node

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestStream_ParsesEventsAndResumes(t *testing.T) {
	var (
		mu         sync.Mutex
		startFroms []string
		conns      int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		conns++
		n := conns
		startFroms = append(startFroms, r.URL.Query().Get("start_from"))
		mu.Unlock()

		w.Header().Set("Content-Type", "text/event-stream")
		if n == 1 {
			fmt.Fprint(w, "data:{\"ApiVersion\":\"1.5.6\"}\n\n")
			fmt.Fprint(w, ": keepalive\n\n")
			fmt.Fprint(w, "data:{\"DeployProcessed\":{\"deploy_hash\":\"aa\"}}\nid:41\n\n")
			fmt.Fprint(w, "id:42\ndata:{\"BlockAdded\":{}}\n\n")
			return
		}
		fmt.Fprint(w, "data:{\"DeployProcessed\":{\"deploy_hash\":\"bb\"}}\nid:43\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	s, err := NewStream(srv.URL+"/events/main", WithReconnectDelay(10*time.Millisecond, 20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewStream failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 10)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, func(ev Event) { events <- ev }) }()

	var got []Event
	timeout := time.After(5 * time.Second)
	for len(got) < 4 {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d", len(got))
		}
	}

	wantTypes := []string{"ApiVersion", EventDeployProcessed, "BlockAdded", EventDeployProcessed}
	for i, want := range wantTypes {
		if got[i].Type != want {
			t.Errorf("event %d type = %q, want %q", i, got[i].Type, want)
		}
	}
	if got[1].ID != 41 || string(got[1].Data) != `{"deploy_hash":"aa"}` {
		t.Errorf("unexpected event %+v", got[1])
	}
	if got[3].ID != 43 {
		t.Errorf("expected resumed event id 43, got %d", got[3].ID)
	}

	mu.Lock()
	if len(startFroms) < 2 || startFroms[0] != "" || startFroms[1] != "42" {
		t.Errorf("unexpected start_from sequence %v", startFroms)
	}
	mu.Unlock()

	if !s.Connected() {
		t.Error("expected stream to report connected")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if s.Connected() {
		t.Error("expected stream to report disconnected after cancel")
	}
}

func TestStream_RetriesWhileUnavailable(t *testing.T) {
	var (
		mu    sync.Mutex
		tries int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		tries++
		n := tries
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "data:{\"DeployProcessed\":{}}\nid:1\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	s, _ := NewStream(srv.URL, WithReconnectDelay(5*time.Millisecond, 10*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 1)
	go func() { _ = s.Run(ctx, func(ev Event) { events <- ev }) }()

	select {
	case ev := <-events:
		if ev.Type != EventDeployProcessed {
			t.Errorf("unexpected event type %q", ev.Type)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stream never delivered an event")
	}
}
