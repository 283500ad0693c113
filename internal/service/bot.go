package service

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/entity"
)

const winScore = 10

type BotService interface {
	// BestMove returns nil when the game is already over.
	BestMove(board *entity.Board) (*entity.Move, error)
	Evaluate(board *entity.Board) (int, error)
	// Analyze returns BestMove and Evaluate from a single search.
	Analyze(board *entity.Board) (*entity.Move, int, error)
}

type botService struct {
	intn func(n int) int
}

// NewBotService - builds a minimax player that breaks ties with rand.Intn.
func NewBotService() BotService {
	return &botService{intn: rand.Intn}
}

// NewBotServiceWithRand - builds a minimax player that breaks ties with rnd.
func NewBotServiceWithRand(rnd *rand.Rand) BotService {
	return &botService{intn: rnd.Intn}
}

func (that *botService) BestMove(board *entity.Board) (*entity.Move, error) {
	move, _, err := that.Analyze(board)
	return move, err
}

func (that *botService) Analyze(board *entity.Board) (*entity.Move, int, error) {
	if board.GameOver() {
		score, err := that.value(board, 0)
		return nil, score, err
	}

	moves := board.EmptyCells()
	scores := make([]int, len(moves))

	for i, move := range moves {
		next, err := board.ApplyMove(move)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to explore move: %w", err)
		}

		if scores[i], err = that.value(next, 0); err != nil {
			return nil, 0, err
		}
	}

	best := scores[0]
	for _, score := range scores[1:] {
		if better(board.Turn(), score, best) {
			best = score
		}
	}

	candidates := make([]entity.Move, 0, len(moves))
	for i, score := range scores {
		if score == best {
			candidates = append(candidates, moves[i])
		}
	}

	chosen := candidates[that.intn(len(candidates))]

	return &chosen, deeper(best), nil
}

func (that *botService) Evaluate(board *entity.Board) (int, error) {
	return that.value(board, 0)
}

// value - minimax score of board: positive favours X, negative favours O,
// quicker wins weigh more than slower ones.
func (that *botService) value(board *entity.Board, depth int) (int, error) {
	switch board.Outcome() {
	case entity.OutcomeXWins:
		return winScore - depth, nil
	case entity.OutcomeOWins:
		return -winScore + depth, nil
	case entity.OutcomeDraw, entity.OutcomeUndecided:
	}

	moves := board.EmptyCells()
	if len(moves) == 0 {
		return 0, nil
	}

	var best int
	for i, move := range moves {
		next, err := board.ApplyMove(move)
		if err != nil {
			return 0, fmt.Errorf("failed to explore move: %w", err)
		}

		score, err := that.value(next, depth+1)
		if err != nil {
			return 0, err
		}

		if i == 0 || better(board.Turn(), score, best) {
			best = score
		}
	}

	return best, nil
}

// deeper - a child score seen one ply further from the root. Nonzero scores
// only come from wins, which lose one point per ply.
func deeper(score int) int {
	switch {
	case score > 0:
		return score - 1
	case score < 0:
		return score + 1
	default:
		return 0
	}
}

// better - X maximises, O minimises.
func better(player entity.Cell, score, best int) bool {
	if player == entity.PlayerX {
		return score > best
	}
	return score < best
}
