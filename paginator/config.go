package paginator

import (
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// DefaultConfig returns the configuration a Paginator starts from before
// options are applied.
func DefaultConfig() *Config {
	return &Config{
		ButtonsConfig: ButtonsConfig{
			Prev:  "⬅",
			Next:  "➡",
			First: "⏪",
			Last:  "⏩",
		},
		CustomIDPrefix:      "paginator",
		Timeout:             30 * time.Second,
		LeftStyle:           discord.ButtonStylePrimary,
		RightStyle:          discord.ButtonStylePrimary,
		NoPermissionMessage: "%s, you're not the author!",
	}
}

type Config struct {
	ButtonsConfig  ButtonsConfig
	CustomIDPrefix string

	// Header is put on top of every page, separated by a newline.
	Header string
	// Timeout is how long the paginator waits for a press before it stops.
	Timeout time.Duration
	// UseExtend adds buttons jumping to the first and last page.
	UseExtend bool
	// Only restricts the buttons to a single user ID. Empty means everyone.
	Only string

	LeftStyle  discord.ButtonStyle
	RightStyle discord.ButtonStyle

	DeleteAfterTimeout bool

	// NoPermissionMessage is sent ephemerally to users other than Only. It is
	// formatted with the user's mention.
	NoPermissionMessage string

	Logger *slog.Logger

	contents    []string
	embeds      []any
	hasContents bool
	hasEmbeds   bool

	basicButtons    []string
	extendedButtons []string
	hasBasic        bool
	hasExtended     bool
}

// ButtonsConfig holds the labels of the navigation buttons.
type ButtonsConfig struct {
	Prev  string
	Next  string
	First string
	Last  string
}

type ConfigOpt func(config *Config)

// Apply applies the given ConfigOpt(s) to the Config
func (c *Config) Apply(opts []ConfigOpt) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithContents sets the text of each page.
func WithContents(contents ...string) ConfigOpt {
	return func(config *Config) {
		config.contents = append([]string(nil), contents...)
		config.hasContents = true
	}
}

// WithEmbeds sets the rich content of each page. The accepted types depend
// on the Client: discord.Embed for disgo, *discordgo.MessageEmbed for
// discordgo and *tele.Photo for telebot.
func WithEmbeds(embeds ...any) ConfigOpt {
	return func(config *Config) {
		config.embeds = append([]any(nil), embeds...)
		config.hasEmbeds = true
	}
}

func WithHeader(header string) ConfigOpt {
	return func(config *Config) {
		config.Header = header
	}
}

func WithTimeout(timeout time.Duration) ConfigOpt {
	return func(config *Config) {
		config.Timeout = timeout
	}
}

// WithExtend enables the first and last page buttons.
func WithExtend(useExtend bool) ConfigOpt {
	return func(config *Config) {
		config.UseExtend = useExtend
	}
}

// WithOnly restricts the paginator to the given user ID.
func WithOnly(userID string) ConfigOpt {
	return func(config *Config) {
		config.Only = userID
	}
}

// WithOnlyUser restricts the paginator to the given Discord user.
func WithOnlyUser(userID snowflake.ID) ConfigOpt {
	return func(config *Config) {
		config.Only = userID.String()
	}
}

// WithBasicButtons sets the labels of the previous and next buttons.
func WithBasicButtons(buttons ...string) ConfigOpt {
	return func(config *Config) {
		config.basicButtons = append([]string(nil), buttons...)
		config.hasBasic = true
	}
}

// WithExtendedButtons sets the labels of the first and last buttons.
func WithExtendedButtons(buttons ...string) ConfigOpt {
	return func(config *Config) {
		config.extendedButtons = append([]string(nil), buttons...)
		config.hasExtended = true
	}
}

func WithButtonStyles(left discord.ButtonStyle, right discord.ButtonStyle) ConfigOpt {
	return func(config *Config) {
		config.LeftStyle = left
		config.RightStyle = right
	}
}

func WithDeleteAfterTimeout(deleteAfterTimeout bool) ConfigOpt {
	return func(config *Config) {
		config.DeleteAfterTimeout = deleteAfterTimeout
	}
}

func WithCustomIDPrefix(prefix string) ConfigOpt {
	return func(config *Config) {
		config.CustomIDPrefix = prefix
	}
}

func WithNoPermissionMessage(message string) ConfigOpt {
	return func(config *Config) {
		config.NoPermissionMessage = message
	}
}

func WithLogger(logger *slog.Logger) ConfigOpt {
	return func(config *Config) {
		config.Logger = logger
	}
}
