package paginator

import (
	"context"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

var _ Client = (*DisgoClient)(nil)

// NewDisgoClient returns a Client sending the paginator to channelID with
// a disgo bot client.
func NewDisgoClient(client bot.Client, channelID snowflake.ID) *DisgoClient {
	return &DisgoClient{
		client:    client,
		channelID: channelID,
	}
}

type DisgoClient struct {
	client    bot.Client
	channelID snowflake.ID
}

func (c *DisgoClient) send(ctx context.Context, view View) (Message, error) {
	builder := discord.NewMessageCreateBuilder().
		SetContent(view.Content).
		AddActionRow(disgoButtons(view.Controls)...)
	if embed, ok := disgoEmbed(view.Rich); ok {
		builder.SetEmbeds(embed)
	}

	message, err := c.client.Rest().CreateMessage(c.channelID, builder.Build(), rest.WithCtx(ctx))
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        message.ID.String(),
		ChannelID: message.ChannelID.String(),
		raw:       message,
	}, nil
}

func (c *DisgoClient) edit(ctx context.Context, interaction Interaction, view View) error {
	e := interaction.raw.(*events.ComponentInteractionCreate)

	builder := discord.NewMessageUpdateBuilder().
		SetContent(view.Content).
		AddActionRow(disgoButtons(view.Controls)...)
	if embed, ok := disgoEmbed(view.Rich); ok {
		builder.SetEmbeds(embed)
	} else {
		builder.ClearEmbeds()
	}
	return e.UpdateMessage(builder.Build(), rest.WithCtx(ctx))
}

func (c *DisgoClient) delete(ctx context.Context, message Message) error {
	m := message.raw.(*discord.Message)
	return c.client.Rest().DeleteMessage(m.ChannelID, m.ID, rest.WithCtx(ctx))
}

func (c *DisgoClient) ack(ctx context.Context, interaction Interaction) error {
	e := interaction.raw.(*events.ComponentInteractionCreate)
	return e.DeferUpdateMessage(rest.WithCtx(ctx))
}

func (c *DisgoClient) subscribe(message Message) *subscription {
	m := message.raw.(*discord.Message)
	sub := newSubscription()
	listener := &disgoListener{messageID: m.ID, sub: sub}
	c.client.AddEventListeners(listener)
	sub.stop = func() {
		c.client.RemoveEventListeners(listener)
	}
	return sub
}

func (c *DisgoClient) notify(ctx context.Context, interaction Interaction, text string) error {
	e := interaction.raw.(*events.ComponentInteractionCreate)
	return e.CreateMessage(discord.NewMessageCreateBuilder().SetContent(text).SetEphemeral(true).Build(), rest.WithCtx(ctx))
}

func (c *DisgoClient) acceptsRich(rich any) bool {
	_, ok := disgoEmbed(rich)
	return ok
}

var _ bot.EventListener = (*disgoListener)(nil)

// disgoListener queues component interactions on one message.
type disgoListener struct {
	messageID snowflake.ID
	sub       *subscription
}

func (l *disgoListener) OnEvent(event bot.Event) {
	e, ok := event.(*events.ComponentInteractionCreate)
	if !ok || e.Message.ID != l.messageID {
		return
	}
	l.sub.push(disgoInteraction(e))
}

func disgoInteraction(e *events.ComponentInteractionCreate) Interaction {
	user := e.User()
	return Interaction{
		MessageID: e.Message.ID.String(),
		UserID:    user.ID.String(),
		Mention:   user.Mention(),
		CustomID:  e.Data.CustomID(),
		raw:       e,
	}
}

func disgoButtons(controls []Control) []discord.InteractiveComponent {
	buttons := make([]discord.InteractiveComponent, 0, len(controls))
	for _, control := range controls {
		buttons = append(buttons, discord.ButtonComponent{
			Style:    control.Style,
			Label:    control.Label,
			CustomID: control.CustomID,
			Disabled: control.Disabled,
		})
	}
	return buttons
}

func disgoEmbed(rich any) (discord.Embed, bool) {
	switch embed := rich.(type) {
	case discord.Embed:
		return embed, true
	case *discord.Embed:
		if embed != nil {
			return *embed, true
		}
	}
	return discord.Embed{}, false
}
