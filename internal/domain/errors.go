package domain

import "errors"

var (
	ErrDeliveryRecordNotFound = errors.New("delivery record not found")
)
