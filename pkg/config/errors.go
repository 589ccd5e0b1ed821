package config

import "errors"

var (
	ErrInvalidConfig   = errors.New("config: invalid configuration")
	ErrInvalidDefault  = errors.New("config: invalid default")
	ErrUnknownProvider = errors.New("config: unknown provider")
)
