package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"nanobanana-go/internal/bot"
	"nanobanana-go/internal/config"
	"nanobanana-go/internal/constants"
	"nanobanana-go/internal/credential"
	"nanobanana-go/internal/events"
	"nanobanana-go/internal/logging"
	tracing "nanobanana-go/internal/monitoring/tracing"
	srv "nanobanana-go/internal/server"
	"nanobanana-go/internal/upstream/gemini"
	"nanobanana-go/internal/version"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Optional path to a YAML or JSON configuration file")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg, err := config.LoadWithFile(*configPath)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if *debug {
		cfg.Debug = true
	}
	if err := logging.Setup(cfg); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}
	defer logging.Close()
	log.WithField("version", version.Version).Info("starting nanobanana bot")

	traceShutdown, err := tracing.Init(context.Background(), tracing.Options{Endpoint: cfg.OTLPEndpoint})
	if err != nil {
		log.WithError(err).Warn("failed to initialize tracing")
	}
	if traceShutdown != nil {
		defer func() {
			if err := traceShutdown(context.Background()); err != nil {
				log.WithError(err).Warn("failed to shutdown tracing")
			}
		}()
	}

	eventHub := events.NewHub()
	healthWatch := srv.NewHealthWatch()
	defer healthWatch.Attach(eventHub)()
	if cfg.Debug {
		eventHub.Subscribe(events.TopicCredentialRemoved, func(_ context.Context, evt events.Event) {
			log.WithField("topic", evt.Topic).Debugf("credential event: %+v", evt.Payload)
		})
		eventHub.Subscribe(events.TopicDispatchFailed, func(_ context.Context, evt events.Event) {
			log.WithField("topic", evt.Topic).Debugf("dispatch event: %+v", evt.Payload)
		})
	}

	pool := credential.LoadPool(cfg.APIKeys, cfg.APIURL, cfg.APIBearerToken)
	pool.SetEventPublisher(eventHub)

	dispatcher := gemini.NewDispatcher(pool, gemini.NewHTTPClient(cfg), gemini.Options{
		BaseURL:        cfg.GeminiBaseURL,
		Model:          cfg.Model,
		RequestTimeout: cfg.RequestTimeout(),
	})
	dispatcher.SetEventPublisher(eventHub)

	handler := bot.NewHandler(dispatcher, bot.NewFetcher(nil), cfg.ImageSize)
	discordBot, err := bot.New(bot.Options{
		Token:       cfg.DiscordToken,
		CommandName: cfg.CommandName,
		GuildID:     cfg.GuildID,
	}, handler)
	if err != nil {
		log.WithError(err).Fatal("failed to create discord bot")
	}

	healthSrv := srv.New(cfg.Port, srv.BuildEngine(cfg, srv.Dependencies{Pool: pool, Ready: discordBot.Ready, Watch: healthWatch}))
	healthSrv.Start()

	if err := discordBot.Start(); err != nil {
		log.WithError(err).Fatal("failed to connect to discord")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := discordBot.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("failed to close discord session")
	}
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("failed to shutdown health server")
	}
	log.Info("bot stopped")
}
