package errs

import (
	"errors"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrOutOfStock      = errors.New("item is out of stock")
	ErrAlreadyReturned = errors.New("borrow is already returned")
	ErrUnknownAction   = errors.New("unknown action")
)

type ErrorResponse struct {
	Message string `json:"message"`
}
