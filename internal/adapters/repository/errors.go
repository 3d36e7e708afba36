package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrOpenStore = errors.New("open snapshot store failed")
	ErrEncode    = errors.New("encode snapshot failed")
	ErrDecode    = errors.New("decode snapshot failed")
)
