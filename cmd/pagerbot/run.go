package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	tele "gopkg.in/telebot.v4"

	"github.com/zevaryx/ButtonPaginator/internal/config"
	"github.com/zevaryx/ButtonPaginator/internal/logger"
	"github.com/zevaryx/ButtonPaginator/paginator"
)

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("startup", slog.String("component", "app"), slog.String("platform", cfg.Bot.Platform))
	switch cfg.Bot.Platform {
	case config.PlatformDisgo:
		return runDisgo(ctx, cfg, log)
	case config.PlatformDiscordGo:
		return runDiscordGo(ctx, cfg, log)
	case config.PlatformTelebot:
		return runTelebot(ctx, cfg, log)
	}
	return fmt.Errorf("unsupported platform %q", cfg.Bot.Platform)
}

// paginatorOpts turns the configured paginator into options for a command
// issued by authorID.
func paginatorOpts(cfg *config.Config, authorID string, log *slog.Logger) []paginator.ConfigOpt {
	opts := []paginator.ConfigOpt{
		paginator.WithContents(cfg.Paginator.Pages...),
		paginator.WithHeader(cfg.Paginator.Header),
		paginator.WithTimeout(time.Duration(cfg.Paginator.TimeoutSeconds) * time.Second),
		paginator.WithExtend(cfg.Paginator.Extend),
		paginator.WithDeleteAfterTimeout(cfg.Paginator.DeleteAfterTimeout),
		paginator.WithLogger(log),
	}
	if cfg.Paginator.OnlyAuthor {
		opts = append(opts, paginator.WithOnly(authorID))
	}
	return opts
}

// serve runs a paginator in the background until it times out.
func serve(ctx context.Context, client paginator.Client, opts []paginator.ConfigOpt, log *slog.Logger) {
	p, err := paginator.New(client, opts...)
	if err != nil {
		log.Error("failed to create paginator", slog.Any("err", err))
		return
	}
	go func() {
		if err := p.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("paginator stopped", slog.Any("err", err))
		}
	}()
}

func runDisgo(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	client, err := disgo.New(cfg.Bot.Token,
		bot.WithLogger(log),
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(gateway.IntentGuildMessages, gateway.IntentDirectMessages, gateway.IntentMessageContent),
		),
		bot.WithEventListenerFunc(func(e *events.MessageCreate) {
			if e.Message.Author.Bot || strings.TrimSpace(e.Message.Content) != cfg.Bot.Command {
				return
			}
			serve(ctx, paginator.NewDisgoClient(e.Client(), e.ChannelID), paginatorOpts(cfg, e.Message.Author.ID.String(), log), log)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create disgo client: %w", err)
	}
	defer client.Close(context.Background())

	if err = client.OpenGateway(ctx); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}
	<-ctx.Done()
	return nil
}

func runDiscordGo(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	session, err := discordgo.New("Bot " + cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("failed to create discordgo session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentDirectMessages | discordgo.IntentMessageContent
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || strings.TrimSpace(m.Content) != cfg.Bot.Command {
			return
		}
		serve(ctx, paginator.NewDiscordGoClient(s, m.ChannelID), paginatorOpts(cfg, m.Author.ID, log), log)
	})

	if err = session.Open(); err != nil {
		return fmt.Errorf("failed to open discordgo session: %w", err)
	}
	defer session.Close()
	<-ctx.Done()
	return nil
}

func runTelebot(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("failed to create telebot: %w", err)
	}

	router := paginator.NewTelebotRouter(b)
	router.Register()
	b.Handle(cfg.Bot.Command, func(c tele.Context) error {
		var authorID string
		if sender := c.Sender(); sender != nil {
			authorID = strconv.FormatInt(sender.ID, 10)
		}
		serve(ctx, router.Client(c.Recipient()), paginatorOpts(cfg, authorID, log), log)
		return nil
	})

	go b.Start()
	<-ctx.Done()
	b.Stop()
	return nil
}
