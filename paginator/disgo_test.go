package paginator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
)

// disgoResponses records the interaction responses of pressed events.
type disgoResponses struct {
	mu    sync.Mutex
	types []discord.InteractionResponseType
}

func (r *disgoResponses) respond(responseType discord.InteractionResponseType, _ discord.InteractionResponseData, _ ...rest.RequestOpt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, responseType)
	return nil
}

func (r *disgoResponses) all() []discord.InteractionResponseType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]discord.InteractionResponseType(nil), r.types...)
}

func newDisgoTestClient(t *testing.T) bot.Client {
	t.Helper()
	// the first token segment is the base64 application ID "123"
	client, err := disgo.New("MTIz.token.secret")
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func disgoTestMessage(id snowflake.ID) Message {
	return Message{ID: id.String(), ChannelID: "5", raw: &discord.Message{ID: id, ChannelID: 5}}
}

func disgoPress(t *testing.T, client bot.Client, responses *disgoResponses, messageID snowflake.ID, customID string) *events.ComponentInteractionCreate {
	t.Helper()
	raw := fmt.Sprintf(`{
		"id": "1", "type": 3, "application_id": "123", "token": "t", "version": 1, "channel_id": "5",
		"user": {"id": "7", "username": "alice"},
		"message": {"id": "%s", "channel_id": "5"},
		"data": {"component_type": 2, "custom_id": %q}
	}`, messageID, customID)

	var interaction discord.ComponentInteraction
	if err := json.Unmarshal([]byte(raw), &interaction); err != nil {
		t.Fatal(err)
	}
	return &events.ComponentInteractionCreate{
		GenericEvent:         events.NewGenericEvent(client, 0, 0),
		ComponentInteraction: interaction,
		Respond:              responses.respond,
	}
}

func TestDisgoSubscription(t *testing.T) {
	client := newDisgoTestClient(t)
	c := NewDisgoClient(client, 5)
	responses := &disgoResponses{}

	sub := c.subscribe(disgoTestMessage(10))
	client.EventManager().DispatchEvent(disgoPress(t, client, responses, 11, "paginator:next"))
	client.EventManager().DispatchEvent(disgoPress(t, client, responses, 10, "paginator:next"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	interaction, err := sub.next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if interaction.MessageID != "10" || interaction.UserID != "7" || interaction.Mention != "<@7>" || interaction.CustomID != "paginator:next" {
		t.Fatalf("unexpected interaction %+v", interaction)
	}

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if _, err = sub.next(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("a press on another message must not be queued, got %v", err)
	}

	sub.close()
	client.EventManager().DispatchEvent(disgoPress(t, client, responses, 10, "paginator:next"))
	if pending := sub.close(); len(pending) != 0 {
		t.Fatalf("presses after close must not be queued, got %d", len(pending))
	}
}

func TestDisgoDispatchAtWindowExpiry(t *testing.T) {
	client := newDisgoTestClient(t)
	c := NewDisgoClient(client, 5)
	responses := &disgoResponses{}

	presses := make([]*events.ComponentInteractionCreate, 50)
	for i := range presses {
		presses[i] = disgoPress(t, client, responses, 10, "paginator:next")
	}

	sub := c.subscribe(disgoTestMessage(10))
	window, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		for _, press := range presses {
			client.EventManager().DispatchEvent(press)
			time.Sleep(time.Millisecond)
		}
	}()

	<-window.Done()
	closed := make(chan []Interaction, 1)
	go func() {
		closed <- sub.close()
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("closing the subscription blocked")
	}
	select {
	case <-dispatched:
	case <-time.After(time.Second):
		t.Fatal("event dispatch blocked")
	}
}

func TestDisgoAck(t *testing.T) {
	client := newDisgoTestClient(t)
	c := NewDisgoClient(client, 5)
	responses := &disgoResponses{}

	e := disgoPress(t, client, responses, 10, "paginator:stop")
	if err := c.ack(context.Background(), disgoInteraction(e)); err != nil {
		t.Fatal(err)
	}
	types := responses.all()
	if len(types) != 1 || types[0] != discord.InteractionResponseTypeDeferredUpdateMessage {
		t.Fatalf("expected a deferred update, got %v", types)
	}
}
