package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7070": ":7070",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServer_ShutdownStopsRun(t *testing.T) {
	srv := New(":0", http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v after graceful shutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Shutdown")
	}
}
