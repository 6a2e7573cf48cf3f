// Package bot connects the command router to the Discord gateway.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/internal/logging"
	"github.com/FocuswithJustin/CedarVerse/internal/router"
)

// App owns the Discord session and dispatches interactions to the router.
type App struct {
	session *discordgo.Session
	router  *router.Router
	guildID string

	handlers map[string]func(context.Context, *discordgo.InteractionCreate) router.Reply
}

// New builds an App for the given bot token. The session is not opened yet.
func New(token, guildID string, r *router.Router) (*App, error) {
	if token == "" {
		return nil, errors.NewValidation("token", "set "+tokenHint+" in the environment")
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "creating discord session")
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	a := &App{
		session: s,
		router:  r,
		guildID: guildID,
	}
	a.handlers = map[string]func(context.Context, *discordgo.InteractionCreate) router.Reply{
		"list_texts":     a.handleListTexts,
		"quote":          a.handleQuote,
		"random_passage": a.handleRandom,
		"search":         a.handleSearch,
	}

	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		a.dispatch(s, i)
	})
	return a, nil
}

const tokenHint = "DISCORD_TOKEN"

// Run opens the gateway, registers the slash commands, and blocks until the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Open(); err != nil {
		return errors.Wrap(err, "opening discord gateway")
	}
	defer a.session.Close()

	user, err := a.session.User("@me")
	if err != nil {
		return errors.Wrap(err, "fetching bot user")
	}
	logging.Info("logged in", "username", user.Username, "user_id", user.ID)

	if _, err := a.session.ApplicationCommandBulkOverwrite(user.ID, a.guildID, Commands()); err != nil {
		return errors.Wrap(err, "registering slash commands")
	}
	logging.Info("slash commands registered", "count", len(Commands()), "guild_id", a.guildID)

	<-ctx.Done()
	logging.Info("shutting down")
	return nil
}

// responder is the slice of discordgo.Session the dispatch path needs,
// extracted so interaction handling tests run against a fake.
type responder interface {
	InteractionRespond(*discordgo.Interaction, *discordgo.InteractionResponse, ...discordgo.RequestOption) error
	FollowupMessageCreate(*discordgo.Interaction, bool, *discordgo.WebhookParams, ...discordgo.RequestOption) (*discordgo.Message, error)
}

// dispatch routes one interaction to its command handler and delivers the
// reply: the first message as the interaction response, the rest as
// followups.
func (a *App) dispatch(s responder, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := a.handlers[name]
	if !ok {
		return
	}

	ctx := router.NewRequestContext(context.Background())
	reply := handler(ctx, i)
	if len(reply.Messages) == 0 {
		return
	}

	var flags discordgo.MessageFlags
	if reply.Ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply.Messages[0],
			Flags:   flags,
		},
	})
	if err != nil {
		logging.ErrorContext(ctx, "interaction respond failed", "command", name, "error", err.Error())
		return
	}

	for _, msg := range reply.Messages[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: msg}); err != nil {
			logging.ErrorContext(ctx, "followup failed", "command", name, "error", err.Error())
			return
		}
	}
}

func (a *App) handleListTexts(ctx context.Context, i *discordgo.InteractionCreate) router.Reply {
	return a.router.ListTexts(ctx)
}

func (a *App) handleQuote(ctx context.Context, i *discordgo.InteractionCreate) router.Reply {
	opts := optionMap(i)
	name := stringOption(opts, "text")
	number := intOption(opts, "number")
	return a.router.Quote(ctx, name, number)
}

func (a *App) handleRandom(ctx context.Context, i *discordgo.InteractionCreate) router.Reply {
	opts := optionMap(i)
	return a.router.RandomPassage(ctx, stringOption(opts, "text"))
}

func (a *App) handleSearch(ctx context.Context, i *discordgo.InteractionCreate) router.Reply {
	opts := optionMap(i)
	return a.router.Search(ctx, stringOption(opts, "query"))
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, o := range i.ApplicationCommandData().Options {
		opts[o.Name] = o
	}
	return opts
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := opts[name]; ok {
		return o.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if o, ok := opts[name]; ok {
		return int(o.IntValue())
	}
	return 0
}
