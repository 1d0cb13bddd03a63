package gridkit

import "errors"

// ErrClosed is returned by operations on a row model after Close.
var ErrClosed = errors.New("gridkit: row model closed")
