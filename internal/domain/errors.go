package domain

import "errors"

var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrAccountNotFound        = errors.New("Account not found.")
	ErrInsufficientFunds      = errors.New("Insufficient funds")
	ErrUnsupportedConversion  = errors.New("Currency conversion not supported.")
	ErrNegativeBalance        = errors.New("Cannot close account with a negative balance.")
	ErrConcurrencyConflict    = errors.New("account was modified concurrently")
	ErrLoanNotFound           = errors.New("Loan not found or you do not have permission to access it.")
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)
