package domain

import "errors"

var (
	ErrPostingSourceUnavailable = errors.New("posting_source_unavailable")
	ErrIncompleteFetch          = errors.New("incomplete_fetch")
	ErrInvalidDateRange         = errors.New("invalid_date_range")
	ErrAccountNotFound          = errors.New("account_not_found")
)
