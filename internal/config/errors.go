package config

import "errors"

// ErrInvalid wraps every validation failure reported by Load.
var ErrInvalid = errors.New("config: invalid configuration")
