package paginator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/disgoorg/disgo/discord"
)

// Paginator shows one page of a message at a time and lets users flip
// through the pages with buttons.
type Paginator struct {
	client Client
	config Config
	pages  []Page
	logger *slog.Logger

	started atomic.Bool

	mu          sync.Mutex
	currentPage int
}

// New validates the given options and returns a Paginator ready to Start.
func New(client Client, opts ...ConfigOpt) (*Paginator, error) {
	if !validClient(client) {
		return nil, fmt.Errorf("%w: %T", ErrInvalidClientType, client)
	}

	config := DefaultConfig()
	config.Apply(opts)

	pages, err := buildPages(config.contents, config.embeds, config.hasContents, config.hasEmbeds)
	if err != nil {
		return nil, err
	}

	if config.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidArgumentType, config.Timeout)
	}
	for i, page := range pages {
		if page.Rich != nil && !client.acceptsRich(page.Rich) {
			return nil, fmt.Errorf("%w: embed %d has unsupported type %T", ErrInvalidArgumentType, i, page.Rich)
		}
	}

	if config.hasBasic {
		if len(config.basicButtons) != 2 {
			return nil, fmt.Errorf("%w: there should be 2 basic buttons, got %d", ErrArgumentCount, len(config.basicButtons))
		}
		config.ButtonsConfig.Prev, config.ButtonsConfig.Next = config.basicButtons[0], config.basicButtons[1]
	}
	if config.hasExtended {
		if len(config.extendedButtons) != 2 {
			return nil, fmt.Errorf("%w: there should be 2 extended buttons, got %d", ErrArgumentCount, len(config.extendedButtons))
		}
		config.ButtonsConfig.First, config.ButtonsConfig.Last = config.extendedButtons[0], config.extendedButtons[1]
	}

	for _, style := range []discord.ButtonStyle{config.LeftStyle, config.RightStyle} {
		if !clickableStyle(style) {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedButtonStyle, style)
		}
	}

	return newPaginator(client, *config, pages), nil
}

func newPaginator(client Client, config Config, pages []Page) *Paginator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	config.contents, config.embeds = nil, nil
	config.basicButtons, config.extendedButtons = nil, nil
	return &Paginator{
		client:      client,
		config:      config,
		pages:       pages,
		logger:      logger.With(slog.String("component", "paginator")),
		currentPage: 1,
	}
}

// clickableStyle reports whether buttons of style can carry a custom ID.
func clickableStyle(style discord.ButtonStyle) bool {
	switch style {
	case discord.ButtonStylePrimary, discord.ButtonStyleSecondary, discord.ButtonStyleSuccess, discord.ButtonStyleDanger:
		return true
	}
	return false
}

// Config returns the validated configuration.
func (p *Paginator) Config() Config {
	return p.config
}

// Pages returns the number of pages.
func (p *Paginator) Pages() int {
	return len(p.pages)
}

// CurrentPage returns the page being shown, starting at 1.
func (p *Paginator) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage
}

func (p *Paginator) setPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentPage = page
}

func (p *Paginator) view(page int) View {
	return View{
		Content:  content(p.config.Header, p.pages[page-1]),
		Rich:     p.pages[page-1].Rich,
		Controls: Controls(p.config, page, len(p.pages)),
	}
}

// Start sends the first page and handles button presses until no press
// arrives within the configured timeout. The message is deleted afterwards
// if DeleteAfterTimeout is set. Start returns ctx.Err() if ctx ends first
// and passes client errors through.
func (p *Paginator) Start(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	page := p.CurrentPage()
	message, err := p.client.send(ctx, p.view(page))
	if err != nil {
		return fmt.Errorf("failed to send paginator message: %w", err)
	}
	p.logger.DebugContext(ctx, "paginator.sent",
		slog.String("message_id", message.ID),
		slog.Int("page", page),
		slog.Int("pages", len(p.pages)),
	)

	sub := p.client.subscribe(message)
	defer p.unsubscribe(ctx, sub)

	for {
		interaction, control, err := p.awaitPress(ctx, message, sub)
		if err != nil {
			return err
		}
		if interaction == nil {
			break
		}

		page = step(page, len(p.pages), control)
		p.setPage(page)
		p.logger.DebugContext(ctx, "paginator.transition",
			slog.String("message_id", message.ID),
			slog.String("control", control),
			slog.String("user_id", interaction.UserID),
			slog.Int("page", page),
		)

		if err = p.client.edit(ctx, *interaction, p.view(page)); err != nil {
			return fmt.Errorf("failed to update paginator message: %w", err)
		}
	}

	p.logger.DebugContext(ctx, "paginator.timeout",
		slog.String("message_id", message.ID),
		slog.Int("page", page),
		slog.Bool("delete", p.config.DeleteAfterTimeout),
	)
	p.unsubscribe(ctx, sub)
	if p.config.DeleteAfterTimeout {
		if err = p.client.delete(ctx, message); err != nil {
			return fmt.Errorf("failed to delete paginator message: %w", err)
		}
	}
	return nil
}

// unsubscribe stops queueing presses and acknowledges those still queued.
func (p *Paginator) unsubscribe(ctx context.Context, sub *subscription) {
	ctx = context.WithoutCancel(ctx)
	for _, interaction := range sub.close() {
		p.acknowledge(ctx, interaction)
	}
}

func (p *Paginator) acknowledge(ctx context.Context, interaction Interaction) {
	if err := p.client.ack(ctx, interaction); err != nil {
		p.logger.ErrorContext(ctx, "Failed to acknowledge interaction",
			slog.String("custom_id", interaction.CustomID),
			slog.Any("err", err),
		)
	}
}

// awaitPress waits for one authorized navigation press within a single
// timeout window. A nil interaction means the window elapsed.
func (p *Paginator) awaitPress(ctx context.Context, message Message, sub *subscription) (*Interaction, string, error) {
	window, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	for {
		interaction, err := sub.next(window)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, "", ctxErr
			}
			if errors.Is(err, context.DeadlineExceeded) && window.Err() != nil {
				return nil, "", nil
			}
			return nil, "", fmt.Errorf("failed to wait for interaction: %w", err)
		}

		if interaction.MessageID != message.ID {
			continue
		}

		if p.config.Only != "" && interaction.UserID != p.config.Only {
			p.logger.WarnContext(ctx, "paginator.unauthorized",
				slog.String("message_id", message.ID),
				slog.String("user_id", interaction.UserID),
			)
			if err = p.client.notify(window, interaction, fmt.Sprintf(p.config.NoPermissionMessage, interaction.Mention)); err != nil {
				p.logger.ErrorContext(ctx, "Failed to send error message", slog.Any("err", err))
			}
			continue
		}

		control, ok := p.parseCustomID(interaction.CustomID)
		if !ok {
			p.acknowledge(window, interaction)
			continue
		}
		return &interaction, control, nil
	}
}

func (p *Paginator) parseCustomID(customID string) (string, bool) {
	control := customID
	if prefix := p.config.CustomIDPrefix; prefix != "" {
		var ok bool
		if control, ok = strings.CutPrefix(customID, prefix+":"); !ok {
			return "", false
		}
	}
	return control, isNavigation(control)
}
