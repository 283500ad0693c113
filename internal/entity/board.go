package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/apperror"
)

const DefaultBoardSize = 3

type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

type Outcome uint8

const (
	OutcomeUndecided Outcome = iota
	OutcomeXWins
	OutcomeOWins
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeXWins:
		return "x_wins"
	case OutcomeOWins:
		return "o_wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "undecided"
	}
}

type Move struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Board is an immutable square grid stored column-major.
// Use ApplyMove to derive the next position.
type Board struct {
	size  int
	cells []Cell
	turn  Cell
}

// NewBoard - creates an empty 3x3 board with X to move.
func NewBoard() *Board {
	return NewBoardOfSize(DefaultBoardSize)
}

// NewBoardOfSize - creates an empty size x size board with X to move.
// A negative size is treated as 0.
func NewBoardOfSize(size int) *Board {
	size = max(size, 0)

	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
		turn:  PlayerX,
	}
}

func (that *Board) Size() int {
	return that.size
}

// Turn - returns the player to move.
func (that *Board) Turn() Cell {
	return that.turn
}

func (that *Board) Cell(column, row int) Cell {
	return that.cells[that.index(column, row)]
}

func (that *Board) index(column, row int) int {
	return column*that.size + row
}

func (that *Board) contains(move Move) bool {
	return move.Column >= 0 && move.Column < that.size && move.Row >= 0 && move.Row < that.size
}

// Outcome - checks every row, column and both diagonals for a full line of one player.
func (that *Board) Outcome() Outcome {
	if winner := that.winner(); winner != EmptyCell {
		if winner == PlayerX {
			return OutcomeXWins
		}
		return OutcomeOWins
	}

	// the game will continue until all the squares are full
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return OutcomeUndecided
		}
	}

	return OutcomeDraw
}

func (that *Board) GameOver() bool {
	return that.Outcome() != OutcomeUndecided
}

func (that *Board) winner() Cell {
	if that.size == 0 {
		return EmptyCell
	}

	for i := 0; i < that.size; i++ {
		if winner := that.lineWinner(i, 0, 0, 1); winner != EmptyCell {
			return winner
		}

		if winner := that.lineWinner(0, i, 1, 0); winner != EmptyCell {
			return winner
		}
	}

	if winner := that.lineWinner(0, 0, 1, 1); winner != EmptyCell {
		return winner
	}

	return that.lineWinner(0, that.size-1, 1, -1)
}

// lineWinner - walks size cells from (column, row) by the given step and returns
// their owner when all of them match, EmptyCell otherwise.
func (that *Board) lineWinner(column, row, columnStep, rowStep int) Cell {
	first := that.Cell(column, row)
	if first == EmptyCell {
		return EmptyCell
	}

	for k := 1; k < that.size; k++ {
		if that.Cell(column+k*columnStep, row+k*rowStep) != first {
			return EmptyCell
		}
	}

	return first
}

// EmptyCells - lists free cells column by column, top to bottom.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, len(that.cells))
	for column := 0; column < that.size; column++ {
		for row := 0; row < that.size; row++ {
			if that.Cell(column, row) == EmptyCell {
				moves = append(moves, Move{Column: column, Row: row})
			}
		}
	}

	return moves
}

// ApplyMove - returns a copy of the board with the mover's piece placed and the turn passed on.
func (that *Board) ApplyMove(move Move) (*Board, error) {
	if !that.contains(move) {
		return nil, fmt.Errorf("%w: cell (%d, %d) is outside the board", apperror.ErrInvalidMove, move.Column, move.Row)
	}

	if that.Cell(move.Column, move.Row) != EmptyCell {
		return nil, fmt.Errorf("%w: cell (%d, %d) is already occupied", apperror.ErrInvalidMove, move.Column, move.Row)
	}

	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)
	cells[that.index(move.Column, move.Row)] = that.turn

	return &Board{
		size:  that.size,
		cells: cells,
		turn:  Opponent(that.turn),
	}, nil
}

// Opponent - returns the other player.
func Opponent(player Cell) Cell {
	if player == PlayerX {
		return PlayerO
	}
	return PlayerX
}
