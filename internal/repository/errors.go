package repository

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrOrderNotFound     = errors.New("standing order not found")
	ErrLineNotFound      = errors.New("order line not found")
	ErrInsufficientStock = errors.New("not enough copies in stock")
	ErrNotOwner          = errors.New("resource owned by another user")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrInvalidInput      = errors.New("invalid input data")
)
