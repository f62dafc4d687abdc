package services

import "errors"

// Sentinel errors returned by the services; controllers translate them to
// HTTP status codes. Validation errors are returned before any mutation.
var (
	ErrInvalidBet         = errors.New("bet amount is not a valid tier")
	ErrInvalidSeed        = errors.New("seed must be between 1 and 100")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrGameNotFound       = errors.New("game not found")
	ErrCardNotFound       = errors.New("card not found")
	ErrCardLocked         = errors.New("card already accepted")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAlreadyJoined      = errors.New("already joined this game")
	ErrNotInGame          = errors.New("not a player in this game")
	ErrAlreadyStarted     = errors.New("game already started")
	ErrNotStarted         = errors.New("game not started")
	ErrAlreadyFinished    = errors.New("game already finished")
	ErrAlreadyDecided     = errors.New("withdrawal already decided")
	ErrExhausted          = errors.New("all numbers have been called")
	ErrBelowMinimum       = errors.New("amount below the configured minimum")
	ErrUnauthorized       = errors.New("unauthorized")
)
