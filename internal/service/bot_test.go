package service

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *entity.Board {
	t.Helper()

	board, err := entity.ParseBoard(text)
	require.NoError(t, err)

	return board
}

func TestBotService_BestMove(t *testing.T) {
	bot := NewBotServiceWithRand(rand.New(rand.NewSource(1)))

	t.Run("Completes its own line", func(t *testing.T) {
		// Given: X to move with two in a row and the third cell open
		board := mustParse(t, "[X][X][ ]\n[O][O][ ]\n[ ][ ][ ]")

		// When: asking for the best move
		move, err := bot.BestMove(board)
		require.NoError(t, err)

		// Then: the bot completes the top row and wins
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{Column: 2, Row: 0}, *move)

		next, err := board.ApplyMove(*move)
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeXWins, next.Outcome())
	})

	t.Run("Blocks the opponent's line", func(t *testing.T) {
		// Given: X to move, no winning move for X, O threatens the top row
		board := mustParse(t, "[O][O][ ]\n[X][ ][ ]\n[ ][ ][X]")

		// When: asking for the best move
		move, err := bot.BestMove(board)
		require.NoError(t, err)

		// Then: the bot blocks at the end of the top row
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{Column: 2, Row: 0}, *move)
	})

	t.Run("O takes the win when available", func(t *testing.T) {
		// Given: O to move with the left column almost complete
		board := mustParse(t, "[O][X][X]\n[O][X][ ]\n[ ][ ][ ]")

		// When: asking for the best move
		move, err := bot.BestMove(board)
		require.NoError(t, err)

		// Then: O completes the column
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{Column: 0, Row: 2}, *move)
	})

	t.Run("Returns no move on a finished game", func(t *testing.T) {
		// Given: a won board and a drawn board
		won := mustParse(t, "[X][X][X]\n[O][O][ ]\n[ ][ ][ ]")
		drawn := mustParse(t, "[X][O][X]\n[X][O][O]\n[O][X][X]")

		// When: asking for the best move
		wonMove, err := bot.BestMove(won)
		require.NoError(t, err)
		drawnMove, err := bot.BestMove(drawn)
		require.NoError(t, err)

		// Then: there is nothing to play
		assert.Nil(t, wonMove)
		assert.Nil(t, drawnMove)
	})

	t.Run("Perfect play from the empty board ends in a draw", func(t *testing.T) {
		// Given: an empty board
		board := entity.NewBoard()

		// When: both sides play the bot's move until the game ends
		for i := 0; i < 9 && !board.GameOver(); i++ {
			move, err := bot.BestMove(board)
			require.NoError(t, err)
			require.NotNil(t, move)

			board, err = board.ApplyMove(*move)
			require.NoError(t, err)
		}

		// Then: the game is drawn
		assert.Equal(t, entity.OutcomeDraw, board.Outcome(), "final board:\n%s", board)
	})

	t.Run("Does not modify the board it searches", func(t *testing.T) {
		// Given: an ongoing board
		board := mustParse(t, "[X][ ][ ]\n[ ][O][ ]\n[ ][ ][ ]")
		before := board.String()

		// When: asking for the best move
		_, err := bot.BestMove(board)
		require.NoError(t, err)

		// Then: the board is unchanged
		assert.Equal(t, before, board.String())
		assert.Equal(t, entity.PlayerX, board.Turn())
	})
}

func TestBotService_BestMoveTieBreak(t *testing.T) {
	// Given: X in the centre, where every corner is an equally good reply for O
	board := mustParse(t, "[ ][ ][ ]\n[ ][X][ ]\n[ ][ ][ ]")
	corners := []entity.Move{{Column: 0, Row: 0}, {Column: 0, Row: 2}, {Column: 2, Row: 0}, {Column: 2, Row: 2}}
	bot := NewBotServiceWithRand(rand.New(rand.NewSource(42)))

	// When: asking for the best move many times
	seen := make(map[entity.Move]int)
	for i := 0; i < 40; i++ {
		move, err := bot.BestMove(board)
		require.NoError(t, err)
		require.NotNil(t, move)
		seen[*move]++
	}

	// Then: only corners are chosen, and more than one of them
	for move := range seen {
		assert.Contains(t, corners, move)
	}
	assert.Greater(t, len(seen), 1)
}

func TestBotService_Evaluate(t *testing.T) {
	bot := NewBotService()

	t.Run("Immediate wins score by depth", func(t *testing.T) {
		// Given: finished boards
		xWon := mustParse(t, "[X][X][X]\n[O][O][ ]\n[ ][ ][ ]")
		oWon := mustParse(t, "[X][X][ ]\n[O][O][O]\n[X][ ][ ]")
		drawn := mustParse(t, "[X][O][X]\n[X][O][O]\n[O][X][X]")

		// Then: wins score the full value and draws score zero
		for board, expected := range map[*entity.Board]int{xWon: 10, oWon: -10, drawn: 0} {
			score, err := bot.Evaluate(board)
			require.NoError(t, err)
			assert.Equal(t, expected, score)
		}
	})

	t.Run("Forced win one ply away", func(t *testing.T) {
		// Given: X to move with a winning cell
		board := mustParse(t, "[X][X][ ]\n[O][O][ ]\n[ ][ ][ ]")

		// When: evaluating the position
		score, err := bot.Evaluate(board)
		require.NoError(t, err)

		// Then: the win is found one ply deep
		assert.Equal(t, 9, score)
	})

	t.Run("Empty board is a draw", func(t *testing.T) {
		score, err := bot.Evaluate(entity.NewBoard())
		require.NoError(t, err)
		assert.Equal(t, 0, score)
	})
}

func TestBotService_Analyze(t *testing.T) {
	boards := map[string]string{
		"X to win":      "[X][X][ ]\n[O][O][ ]\n[ ][ ][ ]",
		"X to block":    "[O][O][ ]\n[X][ ][ ]\n[ ][ ][X]",
		"O to win":      "[O][X][X]\n[O][X][ ]\n[ ][ ][ ]",
		"Opening reply": "[ ][ ][ ]\n[ ][X][ ]\n[ ][ ][ ]",
		"Mid game":      "[X][ ][ ]\n[O][O][ ]\n[X][ ][ ]",
		"Already won":   "[X][X][X]\n[O][O][ ]\n[ ][ ][ ]",
		"Already drawn": "[X][O][X]\n[X][O][O]\n[O][X][X]",
	}

	for name, text := range boards {
		t.Run(name, func(t *testing.T) {
			// Given: the same seed for both searches
			board := mustParse(t, text)
			analyzer := NewBotServiceWithRand(rand.New(rand.NewSource(11)))
			searcher := NewBotServiceWithRand(rand.New(rand.NewSource(11)))

			// When: analyzing the position once
			move, score, err := analyzer.Analyze(board)
			require.NoError(t, err)

			// Then: it agrees with separate BestMove and Evaluate calls
			expectedMove, err := searcher.BestMove(board)
			require.NoError(t, err)
			expectedScore, err := searcher.Evaluate(board)
			require.NoError(t, err)

			assert.Equal(t, expectedMove, move)
			assert.Equal(t, expectedScore, score)
		})
	}
}
