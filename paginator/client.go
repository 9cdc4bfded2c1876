package paginator

import "context"

// Client is the chat platform a Paginator talks to. The set of clients is
// closed: use NewDisgoClient, NewDiscordGoClient, (*TelebotRouter).Client
// or NewMemoryClient.
type Client interface {
	// send creates the paginated message.
	send(ctx context.Context, view View) (Message, error)
	// edit updates the message the interaction was made on and acknowledges it.
	edit(ctx context.Context, interaction Interaction, view View) error
	// ack acknowledges an interaction without changing the message.
	ack(ctx context.Context, interaction Interaction) error
	delete(ctx context.Context, message Message) error
	// subscribe starts queueing the interactions made on message until the
	// subscription is closed. Interactions on other messages are left alone.
	subscribe(message Message) *subscription
	// notify sends text visible only to the user behind interaction.
	notify(ctx context.Context, interaction Interaction, text string) error
	// acceptsRich reports whether rich can be attached to a message.
	acceptsRich(rich any) bool
}

// View is one render of the paginator message.
type View struct {
	Content  string
	Rich     any
	Controls []Control
}

// Message identifies a sent paginator message.
type Message struct {
	ID        string
	ChannelID string

	raw any
}

// Interaction is a button press on a message.
type Interaction struct {
	MessageID string
	UserID    string
	Mention   string
	CustomID  string

	raw any
}

// validClient reports whether client is one of the supported variants.
func validClient(client Client) bool {
	switch c := client.(type) {
	case *DisgoClient:
		return c != nil && c.client != nil
	case *DiscordGoClient:
		return c != nil && c.session != nil
	case *TelebotClient:
		return c != nil && c.router != nil
	case *MemoryClient:
		return c != nil
	}
	return false
}
