package paginator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSubscriptionOrder(t *testing.T) {
	sub := newSubscription()
	for _, id := range []string{"paginator:next", "paginator:prev", "paginator:last"} {
		if !sub.push(Interaction{MessageID: "1", CustomID: id}) {
			t.Fatal("push on an open subscription failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var got []string
	for range 3 {
		interaction, err := sub.next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, interaction.CustomID)
	}
	if diff := cmp.Diff([]string{"paginator:next", "paginator:prev", "paginator:last"}, got); diff != "" {
		t.Fatalf("presses out of order (-want +got):\n%s", diff)
	}
}

func TestSubscriptionWaits(t *testing.T) {
	sub := newSubscription()
	go func() {
		time.Sleep(10 * time.Millisecond)
		sub.push(Interaction{CustomID: "paginator:next"})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	interaction, err := sub.next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if interaction.CustomID != "paginator:next" {
		t.Fatalf("unexpected interaction %+v", interaction)
	}

	short, cancelShort := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelShort()
	if _, err = sub.next(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSubscriptionClose(t *testing.T) {
	var stops int
	sub := newSubscription()
	sub.stop = func() {
		stops++
	}
	sub.push(Interaction{CustomID: "paginator:next"})

	pending := sub.close()
	if len(pending) != 1 || pending[0].CustomID != "paginator:next" {
		t.Fatalf("close must return unread presses, got %v", pending)
	}
	if sub.push(Interaction{CustomID: "paginator:prev"}) {
		t.Fatal("push after close must fail")
	}
	if sub.close() != nil || stops != 1 {
		t.Fatalf("close must be idempotent, stopped %d times", stops)
	}
}

func TestStartAcknowledgesQueuedPresses(t *testing.T) {
	client := NewMemoryClient()
	config := DefaultConfig()
	config.Timeout = 20 * time.Millisecond
	p := newPaginator(client, *config, []Page{{Text: "A"}, {Text: "B"}})

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	client.Click("1", "u", "paginator:next")
	if client.Acks("1") != 0 || client.Edits("1") != 0 {
		t.Fatal("presses after the paginator ended must be dropped")
	}

	sub := newSubscription()
	sub.push(Interaction{MessageID: "1", CustomID: "paginator:next"})
	p.unsubscribe(context.Background(), sub)
	if client.Acks("1") != 1 {
		t.Fatalf("presses left in the queue must be acknowledged, got %d", client.Acks("1"))
	}
}
