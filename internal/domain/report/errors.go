package report

import "errors"

var (
	ErrInvalidDateRange = errors.New("date_to must be on or after date_from")
)
