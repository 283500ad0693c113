package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/repository"
)

const defaultPollInterval = time.Minute

type mentionFeed interface {
	Mentions(ctx context.Context, sinceID int64) ([]entity.Mention, error)
	PostReply(ctx context.Context, reply entity.Reply) error
}

type cursorRepo interface {
	Get(ctx context.Context, handle string) (int64, error)
	Set(ctx context.Context, handle string, id int64) error
}

type responder interface {
	Respond(text string) (string, error)
}

type MentionProcessor struct {
	logger *slog.Logger
	handle string

	feed       mentionFeed
	cursorRepo cursorRepo
	responder  responder
}

func NewMentionProcessor(logger *slog.Logger, handle string, feed mentionFeed, cursorRepo cursorRepo, responder responder) *MentionProcessor {
	return &MentionProcessor{
		logger: logger.With("component", "mention_processor", "handle", handle),
		handle: handle,

		feed:       feed,
		cursorRepo: cursorRepo,
		responder:  responder,
	}
}

// Run - polls the feed every interval until ctx is canceled.
func (that *MentionProcessor) Run(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "Run")

	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := that.ProcessOnce(ctx); err != nil {
			log.Error("failed to process mentions", "error", err)
		}

		select {
		case <-ctx.Done():
			log.Info("Stopping mention polling")
			return
		case <-ticker.C:
		}
	}
}

// ProcessOnce - answers every mention newer than the stored cursor and moves the cursor
// to the newest one. Returns the number of replies posted.
func (that *MentionProcessor) ProcessOnce(ctx context.Context) (int, error) {
	log := that.logger.With("method", "ProcessOnce", "batch_id", uuid.NewString())

	sinceID, err := that.cursorRepo.Get(ctx, that.handle)
	if err != nil && !errors.Is(err, repository.ErrCursorNotFound) {
		return 0, fmt.Errorf("failed to get cursor: %w", err)
	}

	mentions, err := that.feed.Mentions(ctx, sinceID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch mentions: %w", err)
	}

	if len(mentions) == 0 {
		log.Debug("No new mentions", "since_id", sinceID)
		return 0, nil
	}

	// answer in the order the mentions were written
	sort.Slice(mentions, func(i, j int) bool { return mentions[i].ID < mentions[j].ID })

	var replied int
	handled := sinceID
	for _, mention := range mentions {
		if mention.ID <= sinceID {
			continue
		}

		text, err := that.responder.Respond(mention.Text)
		if errors.Is(err, apperror.ErrNoBoard) {
			log.Debug("Skipping mention without a board", "mention_id", mention.ID, "author", mention.Author)
			handled = mention.ID
			continue
		}

		if err != nil {
			return replied, that.abort(ctx, sinceID, handled, fmt.Errorf("failed to respond to mention %d: %w", mention.ID, err))
		}

		if err = that.feed.PostReply(ctx, replyTo(mention, text)); err != nil {
			return replied, that.abort(ctx, sinceID, handled, fmt.Errorf("failed to post reply to mention %d: %w", mention.ID, err))
		}

		log.Info("Replied to mention", "mention_id", mention.ID, "author", mention.Author)
		replied++
		handled = mention.ID
	}

	if handled > sinceID {
		if err = that.cursorRepo.Set(ctx, that.handle, handled); err != nil {
			return replied, fmt.Errorf("failed to set cursor: %w", err)
		}
	}

	return replied, nil
}

// abort - keeps the mentions answered so far from being answered again, then returns cause.
func (that *MentionProcessor) abort(ctx context.Context, sinceID, handled int64, cause error) error {
	if handled <= sinceID {
		return cause
	}

	if err := that.cursorRepo.Set(ctx, that.handle, handled); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to set cursor: %w", err))
	}

	return cause
}

func replyTo(mention entity.Mention, text string) entity.Reply {
	if mention.Author != "" {
		text = "@" + mention.Author + " " + text
	}

	return entity.Reply{InReplyTo: mention.ID, Text: text}
}
