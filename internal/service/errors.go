package service

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrSessionFull        = errors.New("session is full")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
