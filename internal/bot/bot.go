package bot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	apperrors "nanobanana-go/internal/errors"
	mw "nanobanana-go/internal/middleware"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Options configures the Discord bot.
type Options struct {
	Token       string
	CommandName string
	// GuildID scopes command registration to one guild; empty registers globally.
	GuildID string
}

// Bot owns the gateway session and routes slash commands to the handler.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	opts    Options

	ready    atomic.Bool
	inflight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a bot. The session is not opened until Start.
func New(opts Options, handler *Handler) (*Bot, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("discord token is required")
	}
	session, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{session: session, handler: handler, opts: opts, ctx: ctx, cancel: cancel}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) { b.ready.Store(false) })
	return b, nil
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	return nil
}

// Ready reports whether the gateway session is connected.
func (b *Bot) Ready() bool { return b.ready.Load() }

// Stop cancels pending attachment downloads, waits for in-flight commands up
// to ctx and closes the session. Upstream attempts already started run until
// their own timeout.
func (b *Bot) Stop(ctx context.Context) error {
	b.cancel()
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("timed out waiting for in-flight commands")
	}
	b.ready.Store(false)
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.ready.Store(true)
	log.WithField("user", r.User.String()).Info("logged in to discord")

	cmds := []*discordgo.ApplicationCommand{CommandDefinition(b.opts.CommandName)}
	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.opts.GuildID, cmds); err != nil {
		log.WithError(err).Error("failed to sync slash commands")
		return
	}
	log.WithFields(log.Fields{
		"command": b.opts.CommandName,
		"guild":   b.opts.GuildID,
	}).Info("slash commands synced")
}

// onInteraction hands each command to its own goroutine so a slow upstream
// never blocks the gateway event loop.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	req, ok := parseRequest(i, b.opts.CommandName)
	if !ok {
		return
	}
	responder := NewSessionResponder(s, i.Interaction)

	b.inflight.Add(1)
	mw.SafeGo("interaction:"+req.InteractionID, func() {
		defer b.inflight.Done()
		b.handler.Handle(b.ctx, req, responder)
	}, func(any) {
		_ = responder.EditOriginal(OutgoingMessage{Content: apperrors.MsgUnexpected})
	})
}
