package audit

import (
	"log/slog"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	s.Record(KindAccessGranted, "", "")
	s.Record(KindLoginOK, "ada@example.com", "")
	s.Record(KindLoginFailed, "eve@example.com", "Unidentified customer")

	events := s.Recent(10)
	if len(events) != 3 {
		t.Fatalf("Recent() returned %d events, want 3", len(events))
	}
	// Newest first.
	if events[0].Kind != KindLoginFailed {
		t.Errorf("events[0].Kind = %q, want %q", events[0].Kind, KindLoginFailed)
	}
	if events[2].Kind != KindAccessGranted {
		t.Errorf("events[2].Kind = %q, want %q", events[2].Kind, KindAccessGranted)
	}
	if events[1].Subject != "ada@example.com" {
		t.Errorf("events[1].Subject = %q", events[1].Subject)
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	for range 5 {
		s.Record(KindLogout, "", "")
	}
	if got := len(s.Recent(2)); got != 2 {
		t.Errorf("Recent(2) returned %d events", got)
	}
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	events := s.Recent(10)
	if events == nil {
		t.Fatal("Recent() should return an empty slice, not nil")
	}
	if len(events) != 0 {
		t.Errorf("Recent() returned %d events, want 0", len(events))
	}
}
