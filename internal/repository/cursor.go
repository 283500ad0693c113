package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var ErrCursorNotFound = errors.New("cursor not found")

// CursorRepository keeps the id of the last mention answered for each bot handle.
type CursorRepository interface {
	Get(ctx context.Context, handle string) (int64, error)
	Set(ctx context.Context, handle string, id int64) error
}

type dbCursor struct {
	client *redis.Client
}

func NewCursorRepository(client *redis.Client) CursorRepository {
	return &dbCursor{
		client: client,
	}
}

func (that *dbCursor) Get(ctx context.Context, handle string) (int64, error) {
	cursorKey := "cursor:" + handle

	response, err := that.client.Get(ctx, cursorKey).Result()

	if errors.Is(err, redis.Nil) {
		return 0, ErrCursorNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get cursor: %w", err)
	}

	id, err := strconv.ParseInt(response, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse cursor %q: %w", response, err)
	}

	return id, nil
}

func (that *dbCursor) Set(ctx context.Context, handle string, id int64) error {
	cursorKey := "cursor:" + handle

	err := that.client.Set(ctx, cursorKey, strconv.FormatInt(id, 10), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set cursor: %w", err)
	}

	return nil
}
