package models

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrParse             = errors.New("malformed document")
	ErrStorage           = errors.New("storage failure")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
