package paginator

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

var _ Client = (*DiscordGoClient)(nil)

// NewDiscordGoClient returns a Client sending the paginator to channelID
// with a discordgo session.
func NewDiscordGoClient(session *discordgo.Session, channelID string) *DiscordGoClient {
	return &DiscordGoClient{
		session:   session,
		channelID: channelID,
	}
}

type DiscordGoClient struct {
	session   *discordgo.Session
	channelID string
}

func (c *DiscordGoClient) send(ctx context.Context, view View) (Message, error) {
	data := &discordgo.MessageSend{
		Content:    view.Content,
		Components: discordgoComponents(view.Controls),
	}
	if embed, ok := view.Rich.(*discordgo.MessageEmbed); ok && embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{embed}
	}

	message, err := c.session.ChannelMessageSendComplex(c.channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		raw:       message,
	}, nil
}

func (c *DiscordGoClient) edit(ctx context.Context, interaction Interaction, view View) error {
	i := interaction.raw.(*discordgo.InteractionCreate)

	embeds := []*discordgo.MessageEmbed{}
	if embed, ok := view.Rich.(*discordgo.MessageEmbed); ok && embed != nil {
		embeds = append(embeds, embed)
	}
	return c.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    view.Content,
			Embeds:     embeds,
			Components: discordgoComponents(view.Controls),
		},
	}, discordgo.WithContext(ctx))
}

func (c *DiscordGoClient) delete(ctx context.Context, message Message) error {
	return c.session.ChannelMessageDelete(message.ChannelID, message.ID, discordgo.WithContext(ctx))
}

func (c *DiscordGoClient) ack(ctx context.Context, interaction Interaction) error {
	i := interaction.raw.(*discordgo.InteractionCreate)
	return c.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
}

func (c *DiscordGoClient) subscribe(message Message) *subscription {
	sub := newSubscription()
	listener := &discordgoListener{messageID: message.ID, sub: sub}
	sub.stop = c.session.AddHandler(listener.onInteractionCreate)
	return sub
}

func (c *DiscordGoClient) notify(ctx context.Context, interaction Interaction, text string) error {
	i := interaction.raw.(*discordgo.InteractionCreate)
	return c.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

func (c *DiscordGoClient) acceptsRich(rich any) bool {
	embed, ok := rich.(*discordgo.MessageEmbed)
	return ok && embed != nil
}

// discordgoListener queues component interactions on one message.
type discordgoListener struct {
	messageID string
	sub       *subscription
}

func (l *discordgoListener) onInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent || i.Message == nil || i.Message.ID != l.messageID {
		return
	}
	l.sub.push(discordgoInteraction(i))
}

func discordgoInteraction(i *discordgo.InteractionCreate) Interaction {
	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}
	var userID, mention string
	if user != nil {
		userID, mention = user.ID, user.Mention()
	}
	return Interaction{
		MessageID: i.Message.ID,
		UserID:    userID,
		Mention:   mention,
		CustomID:  i.MessageComponentData().CustomID,
		raw:       i,
	}
}

// discordgoComponents converts controls into a single action row. Button
// styles share their numeric values with disgo's.
func discordgoComponents(controls []Control) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(controls))
	for _, control := range controls {
		buttons = append(buttons, discordgo.Button{
			Label:    control.Label,
			Style:    discordgo.ButtonStyle(control.Style),
			Disabled: control.Disabled,
			CustomID: control.CustomID,
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}
