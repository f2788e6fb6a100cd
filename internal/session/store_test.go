package session

import (
	"context"
	"testing"
	"time"

	"github.com/nsight-itsm/assistant/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	got, err := store.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Get(missing) = %#v, want nil", got)
	}

	state := State{
		LastCategory:    "technical",
		LastDescription: "vpn drops",
		SimilarTickets:  []domain.SimilarTicket{{TicketID: "T-1", SimilarityScore: 0.8}},
	}
	if err := store.Put(ctx, "sess-1", state); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err = store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.LastCategory != "technical" || len(got.SimilarTickets) != 1 {
		t.Fatalf("Get() = %#v", got)
	}

	// returned state is a copy; mutating it must not leak back
	got.LastCategory = "mutated"
	again, _ := store.Get(ctx, "sess-1")
	if again.LastCategory != "technical" {
		t.Errorf("stored state mutated through returned copy")
	}

	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, _ = store.Get(ctx, "sess-1")
	if got != nil {
		t.Errorf("Get after Clear = %#v, want nil", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(-time.Second)
	ctx := context.Background()

	if err := store.Put(ctx, "sess-1", State{LastCategory: "billing"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %#v, want nil for expired entry", got)
	}
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_ = store.Put(ctx, "sess-a", State{LastCategory: "technical"})
	_ = store.Put(ctx, "sess-b", State{LastCategory: "billing"})

	a, _ := store.Get(ctx, "sess-a")
	b, _ := store.Get(ctx, "sess-b")
	if a.LastCategory != "technical" || b.LastCategory != "billing" {
		t.Errorf("cross-session leakage: a=%#v b=%#v", a, b)
	}
}
