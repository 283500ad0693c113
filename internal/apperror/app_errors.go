package apperror

import "errors"

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMove  = errors.New("invalid move")
	ErrNoBoard      = errors.New("no board found in text")
)
