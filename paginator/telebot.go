package paginator

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"
)

var _ Client = (*TelebotClient)(nil)

// controlNoop marks Telegram buttons standing in for disabled controls.
// Telegram has no disabled buttons, so they are answered and dropped.
const controlNoop = "_noop"

// NewTelebotRouter returns a router dispatching paginator button presses
// of b. Telegram allows a single handler per callback endpoint, so one
// router serves every paginator of a bot. Wire it with Register or call
// Handle from an existing callback handler.
func NewTelebotRouter(b *tele.Bot) *TelebotRouter {
	return &TelebotRouter{
		bot:           b,
		subscriptions: map[string]*subscription{},
	}
}

type TelebotRouter struct {
	bot *tele.Bot

	mu            sync.Mutex
	subscriptions map[string]*subscription
}

// Register installs the router as the handler of the given callback
// uniques. It defaults to the default custom ID prefix.
func (r *TelebotRouter) Register(uniques ...string) {
	if len(uniques) == 0 {
		uniques = []string{DefaultConfig().CustomIDPrefix}
	}
	for _, unique := range uniques {
		r.bot.Handle("\f"+unique, r.Handle)
	}
}

// Client returns a Client sending paginators to to.
func (r *TelebotRouter) Client(to tele.Recipient) *TelebotClient {
	return &TelebotClient{
		router: r,
		to:     to,
	}
}

// Handle routes a callback to the paginator running on its message.
// Callbacks no paginator is running on are answered and dropped.
func (r *TelebotRouter) Handle(c tele.Context) error {
	cb := c.Callback()
	if cb == nil || cb.Message == nil {
		return nil
	}
	unique, control := parseCallbackData(cb)
	if control == controlNoop || control == ControlPageLabel || unique == ControlPageLabel {
		return c.Respond()
	}

	r.mu.Lock()
	sub, ok := r.subscriptions[telebotKey(cb.Message)]
	r.mu.Unlock()
	if !ok || !sub.push(telebotInteraction(cb)) {
		return c.Respond()
	}
	return nil
}

func (r *TelebotRouter) add(key string, sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscriptions[key] = sub
}

func (r *TelebotRouter) remove(key string, sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subscriptions[key] == sub {
		delete(r.subscriptions, key)
	}
}

type TelebotClient struct {
	router *TelebotRouter
	to     tele.Recipient
}

func (c *TelebotClient) send(_ context.Context, view View) (Message, error) {
	message, err := c.router.bot.Send(c.to, telebotWhat(view), telebotMarkup(view.Controls))
	if err != nil {
		return Message{}, err
	}
	return telebotMessage(message), nil
}

func (c *TelebotClient) edit(_ context.Context, interaction Interaction, view View) error {
	cb := interaction.raw.(*tele.Callback)
	if _, err := c.router.bot.Edit(cb.Message, telebotWhat(view), telebotMarkup(view.Controls)); err != nil && !telebotUnchanged(err) {
		return err
	}
	return c.router.bot.Respond(cb)
}

// telebotUnchanged reports whether err rejects an edit that would leave the
// message as it is, as happens when a stale press is applied twice.
func telebotUnchanged(err error) bool {
	return errors.Is(err, tele.ErrSameMessageContent) || errors.Is(err, tele.ErrMessageNotModified)
}

func (c *TelebotClient) ack(_ context.Context, interaction Interaction) error {
	return c.router.bot.Respond(interaction.raw.(*tele.Callback))
}

func (c *TelebotClient) delete(_ context.Context, message Message) error {
	return c.router.bot.Delete(message.raw.(*tele.Message))
}

func (c *TelebotClient) subscribe(message Message) *subscription {
	key := telebotKey(message.raw.(*tele.Message))
	sub := newSubscription()
	c.router.add(key, sub)
	sub.stop = func() {
		c.router.remove(key, sub)
	}
	return sub
}

func (c *TelebotClient) notify(_ context.Context, interaction Interaction, text string) error {
	cb := interaction.raw.(*tele.Callback)
	return c.router.bot.Respond(cb, &tele.CallbackResponse{Text: text, ShowAlert: true})
}

func (c *TelebotClient) acceptsRich(rich any) bool {
	photo, ok := rich.(*tele.Photo)
	return ok && photo != nil
}

func telebotMessage(message *tele.Message) Message {
	var chatID int64
	if message.Chat != nil {
		chatID = message.Chat.ID
	}
	return Message{
		ID:        strconv.Itoa(message.ID),
		ChannelID: strconv.FormatInt(chatID, 10),
		raw:       message,
	}
}

func telebotInteraction(cb *tele.Callback) Interaction {
	unique, control := parseCallbackData(cb)
	customID := unique
	if control != "" {
		customID = unique + ":" + control
	}
	var userID, mention string
	if cb.Sender != nil {
		userID = strconv.FormatInt(cb.Sender.ID, 10)
		mention = cb.Sender.FirstName
		if cb.Sender.Username != "" {
			mention = "@" + cb.Sender.Username
		}
	}
	return Interaction{
		MessageID: strconv.Itoa(cb.Message.ID),
		UserID:    userID,
		Mention:   mention,
		CustomID:  customID,
		raw:       cb,
	}
}

// telebotKey identifies a message across chats.
func telebotKey(message *tele.Message) string {
	msgID, chatID := message.MessageSig()
	return strconv.FormatInt(chatID, 10) + ":" + msgID
}

// telebotWhat returns the payload to send for view. Photo pages carry the
// text as caption.
func telebotWhat(view View) any {
	if photo, ok := view.Rich.(*tele.Photo); ok && photo != nil {
		p := *photo
		p.Caption = view.Content
		return &p
	}
	return view.Content
}

func telebotMarkup(controls []Control) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	row := make([]tele.InlineButton, 0, len(controls))
	for _, control := range controls {
		unique, data, _ := strings.Cut(control.CustomID, ":")
		if control.Disabled && control.ID != ControlPageLabel {
			data = controlNoop
		}
		row = append(row, *markup.Data(control.Label, unique, data).Inline())
	}
	markup.InlineKeyboard = [][]tele.InlineButton{row}
	return markup
}

// parseCallbackData returns the unique and payload of a callback. Telebot
// fills Unique when the callback was routed by its unique, otherwise the
// raw \f<unique>|<payload> encoding is in Data.
func parseCallbackData(cb *tele.Callback) (string, string) {
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	unique, payload, _ := strings.Cut(raw, "|")
	return strings.TrimSpace(unique), payload
}
