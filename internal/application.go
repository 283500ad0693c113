package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/config"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/repository/storage"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/service"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/transport/feed"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/tweettactoe-bot/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	bot := service.NewBotService()
	replies := service.NewReplyService(bot, conf.Bot.Hashtag)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, bot, replies)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	if conf.Feed.BaseURL == "" {
		log.Info("Feed base URL is empty, mention polling disabled")
	} else {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		cursorRepo := repository.NewCursorRepository(redisStorage)
		feedClient := feed.New(conf.Feed.BaseURL, conf.Bot.Handle, conf.Feed.Timeout)
		processor := usecase.NewMentionProcessor(logger, conf.Bot.Handle, feedClient, cursorRepo, replies)

		// run mention polling
		go func() {
			log.Info("Starting mention polling", "interval", conf.Bot.PollInterval)
			processor.Run(ctx, conf.Bot.PollInterval)
		}()
	}

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
