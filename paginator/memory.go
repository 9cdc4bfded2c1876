package paginator

import (
	"context"
	"strconv"
	"sync"
)

var _ Client = (*MemoryClient)(nil)

// Notice is an ephemeral message recorded by a MemoryClient.
type Notice struct {
	Interaction Interaction
	Text        string
}

// NewMemoryClient returns a Client that keeps everything in process. Sent
// and edited views are recorded and presses are fed with Press. Message IDs
// are assigned sequentially starting at "1".
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		sent: make(chan Message, 16),
	}
}

type MemoryClient struct {
	sent chan Message

	mu       sync.Mutex
	lastID   int
	queues   map[string]*subscription
	views    []View
	deleted  []Message
	notices  []Notice
	editsFor map[string]int
	acksFor  map[string]int
}

// Press queues a button press on interaction.MessageID. Presses may be
// queued before the message exists. Presses on a message whose paginator
// has finished are dropped.
func (c *MemoryClient) Press(interaction Interaction) {
	c.queue(interaction.MessageID).push(interaction)
}

func (c *MemoryClient) queue(messageID string) *subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queues == nil {
		c.queues = map[string]*subscription{}
	}
	sub, ok := c.queues[messageID]
	if !ok {
		sub = newSubscription()
		c.queues[messageID] = sub
	}
	return sub
}

// Click queues a press of the given custom ID by userID on messageID.
func (c *MemoryClient) Click(messageID string, userID string, customID string) {
	c.Press(Interaction{
		MessageID: messageID,
		UserID:    userID,
		Mention:   "<@" + userID + ">",
		CustomID:  customID,
	})
}

// Sent returns a channel receiving every message created by the client.
func (c *MemoryClient) Sent() <-chan Message {
	return c.sent
}

// Views returns every view sent or edited in order.
func (c *MemoryClient) Views() []View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]View(nil), c.views...)
}

// LastView returns the most recent view and false if nothing was sent.
func (c *MemoryClient) LastView() (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.views) == 0 {
		return View{}, false
	}
	return c.views[len(c.views)-1], true
}

// Edits returns how many times messageID was edited.
func (c *MemoryClient) Edits(messageID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editsFor[messageID]
}

// Acks returns how many interactions on messageID were acknowledged
// without an update.
func (c *MemoryClient) Acks(messageID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acksFor[messageID]
}

func (c *MemoryClient) Deleted() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.deleted...)
}

func (c *MemoryClient) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notice(nil), c.notices...)
}

func (c *MemoryClient) send(_ context.Context, view View) (Message, error) {
	c.mu.Lock()
	c.lastID++
	message := Message{ID: strconv.Itoa(c.lastID), ChannelID: "memory"}
	c.views = append(c.views, view)
	c.mu.Unlock()

	select {
	case c.sent <- message:
	default:
	}
	return message, nil
}

func (c *MemoryClient) edit(_ context.Context, interaction Interaction, view View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editsFor == nil {
		c.editsFor = map[string]int{}
	}
	c.editsFor[interaction.MessageID]++
	c.views = append(c.views, view)
	return nil
}

func (c *MemoryClient) delete(_ context.Context, message Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, message)
	return nil
}

func (c *MemoryClient) ack(_ context.Context, interaction Interaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.acksFor == nil {
		c.acksFor = map[string]int{}
	}
	c.acksFor[interaction.MessageID]++
	return nil
}

func (c *MemoryClient) subscribe(message Message) *subscription {
	return c.queue(message.ID)
}

func (c *MemoryClient) notify(_ context.Context, interaction Interaction, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Interaction: interaction, Text: text})
	return nil
}

func (c *MemoryClient) acceptsRich(_ any) bool {
	return true
}
