package eventbus

import (
	"context"
	"sync"
	"testing"
)

type ping struct{ n int }
type pong struct{ n int }

func TestPublishDispatchesByType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var pings, pongs []int
	Subscribe(func(ctx context.Context, e ping) { pings = append(pings, e.n) })
	Subscribe(func(ctx context.Context, e pong) { pongs = append(pongs, e.n) })

	ctx := context.Background()
	Publish(ctx, ping{1})
	Publish(ctx, ping{2})
	Publish(ctx, pong{3})

	if len(pings) != 2 || pings[0] != 1 || pings[1] != 2 {
		t.Fatalf("ping handler saw %v", pings)
	}
	if len(pongs) != 1 || pongs[0] != 3 {
		t.Fatalf("pong handler saw %v", pongs)
	}
}

func TestSubscriptionOrderPreserved(t *testing.T) {
	Use(New())
	defer Use(nil)

	var order []string
	Subscribe(func(ctx context.Context, e ping) { order = append(order, "first") })
	Subscribe(func(ctx context.Context, e ping) { order = append(order, "second") })

	Publish(context.Background(), ping{})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("handlers ran out of order: %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	Use(New())
	defer Use(nil)

	var kept, removed int
	Subscribe(func(ctx context.Context, e ping) { kept++ })
	unsubscribe := Subscribe(func(ctx context.Context, e ping) { removed++ })

	ctx := context.Background()
	Publish(ctx, ping{})
	unsubscribe()
	unsubscribe() // second call is a no-op
	Publish(ctx, ping{})

	if kept != 2 {
		t.Fatalf("remaining handler ran %d times, want 2", kept)
	}
	if removed != 1 {
		t.Fatalf("removed handler ran %d times, want 1", removed)
	}
}

func TestNoBusIsNoOp(t *testing.T) {
	Use(nil)

	unsubscribe := Subscribe(func(ctx context.Context, e ping) {
		t.Fatal("handler must not be registered without a bus")
	})
	Publish(context.Background(), ping{})
	unsubscribe()
}

func TestConcurrentPublish(t *testing.T) {
	Use(New())
	defer Use(nil)

	var mu sync.Mutex
	seen := 0
	Subscribe(func(ctx context.Context, e ping) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				Publish(context.Background(), ping{})
			}
		}()
	}
	wg.Wait()

	if seen != 16*25 {
		t.Fatalf("handler ran %d times, want %d", seen, 16*25)
	}
}
