package cmd

import "errors"

var (
	// ErrInvalidFlag is returned when a flag value is outside its valid range
	ErrInvalidFlag = errors.New("invalid flag value")

	// ErrDomainRequired is returned when analyze is invoked without a domain
	ErrDomainRequired = errors.New("domain is required")
)
