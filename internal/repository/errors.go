package repository

import "errors"

// ErrUnknownSample indicates a sample name not present in the library
var ErrUnknownSample = errors.New("unknown sample name")
