package gatestore

import "errors"

var (
	ErrInvalidRecordData = errors.New("invalid delivery record data")
)
