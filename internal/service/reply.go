package service

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tweettactoe-bot/internal/entity"
)

var boardPattern = regexp.MustCompile(`(?s)\[.+\]`)

var (
	movePhrases = []string{
		"Your move:",
		"Your turn:",
		"Over to you:",
	}
	winPhrases = []string{
		"I win! Good game:",
		"That's three in a row for me:",
	}
	drawPhrases = []string{
		"It's a draw:",
		"Nobody wins this one:",
	}
	finishedPhrases = []string{
		"This game is already over:",
		"Nothing left to play here:",
	}
	unreadablePhrases = []string{
		"I couldn't read that board. Send me something like [X][ ][ ] on three lines.",
		"That board doesn't look right to me. Check the pieces and try again.",
	}
)

type ReplyService interface {
	ExtractBoard(text string) (string, bool)
	Respond(text string) (string, error)
}

type replyService struct {
	bot     BotService
	hashtag string
	intn    func(n int) int
}

func NewReplyService(bot BotService, hashtag string) ReplyService {
	return &replyService{
		bot:     bot,
		hashtag: hashtag,
		intn:    rand.Intn,
	}
}

func NewReplyServiceWithRand(bot BotService, hashtag string, rnd *rand.Rand) ReplyService {
	return &replyService{
		bot:     bot,
		hashtag: hashtag,
		intn:    rnd.Intn,
	}
}

// ExtractBoard - returns the span from the first '[' to the last ']' of text.
func (that *replyService) ExtractBoard(text string) (string, bool) {
	board := boardPattern.FindString(text)
	return board, board != ""
}

// Respond - plays the bot's move on the board found in text and composes the reply.
func (that *replyService) Respond(text string) (string, error) {
	boardText, ok := that.ExtractBoard(text)
	if !ok {
		return "", apperror.ErrNoBoard
	}

	board, err := entity.ParseDefaultBoard(boardText)
	if errors.Is(err, apperror.ErrInvalidBoard) {
		return that.pick(unreadablePhrases), nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to parse board: %w", err)
	}

	if board.GameOver() {
		return that.compose(that.pick(finishedPhrases), board), nil
	}

	move, err := that.bot.BestMove(board)
	if err != nil {
		return "", fmt.Errorf("failed to find best move: %w", err)
	}

	next, err := board.ApplyMove(*move)
	if err != nil {
		return "", fmt.Errorf("failed to apply best move: %w", err)
	}

	switch next.Outcome() {
	case entity.OutcomeXWins, entity.OutcomeOWins:
		return that.compose(that.pick(winPhrases), next), nil
	case entity.OutcomeDraw:
		return that.compose(that.pick(drawPhrases), next), nil
	default:
		return that.compose(that.pick(movePhrases), next), nil
	}
}

func (that *replyService) compose(opener string, board *entity.Board) string {
	return opener + "\n\n" + board.String() + "\n#" + that.hashtag
}

func (that *replyService) pick(phrases []string) string {
	return phrases[that.intn(len(phrases))]
}
