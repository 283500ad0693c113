package entity

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/apperror"
)

// String - renders the board row by row, top to bottom, as "[X][O][ ]" lines.
func (that *Board) String() string {
	var sb strings.Builder

	for row := 0; row < that.size; row++ {
		for column := 0; column < that.size; column++ {
			sb.WriteString("[" + that.Cell(column, row).String() + "]")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ParseBoard - reads the bracketed form produced by String.
// The size is inferred from the cell count and the player to move from the piece counts.
func ParseBoard(text string) (*Board, error) {
	tokens, err := scanCells(text)
	if err != nil {
		return nil, err
	}

	size := int(math.Sqrt(float64(len(tokens))))
	if size == 0 || size*size != len(tokens) {
		return nil, fmt.Errorf("%w: %d cells do not form a square", apperror.ErrInvalidBoard, len(tokens))
	}

	board := NewBoardOfSize(size)

	var numX, numO int
	for i, cell := range tokens {
		// tokens arrive row-major, storage is column-major
		column, row := i%size, i/size
		board.cells[board.index(column, row)] = cell

		switch cell {
		case PlayerX:
			numX++
		case PlayerO:
			numO++
		}
	}

	if numX-numO > 1 || numO-numX > 1 {
		return nil, fmt.Errorf("%w: %d X against %d O", apperror.ErrInvalidBoard, numX, numO)
	}

	if numX > numO {
		board.turn = PlayerO
	}

	return board, nil
}

// ParseDefaultBoard - ParseBoard for text from outside callers: anything but a
// DefaultBoardSize grid is rejected, so the exhaustive search stays small.
func ParseDefaultBoard(text string) (*Board, error) {
	board, err := ParseBoard(text)
	if err != nil {
		return nil, err
	}

	if board.size != DefaultBoardSize {
		return nil, fmt.Errorf("%w: %dx%d board, only %dx%d is played",
			apperror.ErrInvalidBoard, board.size, board.size, DefaultBoardSize, DefaultBoardSize)
	}

	return board, nil
}

// scanCells - returns the bracketed cells of text in reading order.
func scanCells(text string) ([]Cell, error) {
	var (
		cells    []Cell
		inside   bool
		occupied bool
	)

	for _, r := range text {
		switch {
		case r == '[':
			if inside {
				return nil, fmt.Errorf("%w: nested '['", apperror.ErrInvalidBoard)
			}
			inside, occupied = true, false
			cells = append(cells, EmptyCell)

		case r == ']':
			if !inside {
				return nil, fmt.Errorf("%w: unexpected ']'", apperror.ErrInvalidBoard)
			}
			inside = false

		case unicode.IsSpace(r):
			continue

		case !inside:
			return nil, fmt.Errorf("%w: unexpected character %q", apperror.ErrInvalidBoard, r)

		default:
			cell, err := parseCell(r)
			if err != nil {
				return nil, err
			}

			if occupied {
				return nil, fmt.Errorf("%w: more than one piece in a cell", apperror.ErrInvalidBoard)
			}
			occupied = true
			cells[len(cells)-1] = cell
		}
	}

	if inside {
		return nil, fmt.Errorf("%w: unclosed '['", apperror.ErrInvalidBoard)
	}

	return cells, nil
}

func parseCell(r rune) (Cell, error) {
	switch unicode.ToUpper(r) {
	case 'X':
		return PlayerX, nil
	case 'O':
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: unknown piece %q", apperror.ErrInvalidBoard, r)
	}
}
