package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/entity"
)

const (
	maxBodyBytes    = 4 << 10
	requestIDHeader = "X-Request-ID"
)

type botService interface {
	Analyze(board *entity.Board) (*entity.Move, int, error)
}

type replyService interface {
	Respond(text string) (string, error)
}

type bestMoveResponse struct {
	Move    *entity.Move `json:"move"`
	Score   int          `json:"score"`
	Board   string       `json:"board"`
	Outcome string       `json:"outcome"`
}

type handlers struct {
	logger *slog.Logger

	bot     botService
	replies replyService
}

func (that *handlers) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// bestMove - plays the bot's move on the board sent as the request body.
func (that *handlers) bestMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "bestMove", "request_id", w.Header().Get(requestIDHeader))

	body, err := readBody(r)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	board, err := entity.ParseDefaultBoard(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	move, score, err := that.bot.Analyze(board)
	if err != nil {
		log.Error("failed to analyze board", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	next := board
	if move != nil {
		if next, err = board.ApplyMove(*move); err != nil {
			log.Error("failed to apply best move", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, bestMoveResponse{
		Move:    move,
		Score:   score,
		Board:   next.String(),
		Outcome: next.Outcome().String(),
	})
}

// reply - answers a mention text the way the bot would on the feed.
func (that *handlers) reply(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "reply", "request_id", w.Header().Get(requestIDHeader))

	body, err := readBody(r)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	text, err := that.replies.Respond(body)
	if errors.Is(err, apperror.ErrNoBoard) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err != nil {
		log.Error("failed to respond", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func readBody(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
