package genai

import "errors"

var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("generative-language API key is required")
	// ErrRequestFailed is returned when the generation request fails
	ErrRequestFailed = errors.New("generation request failed")
	// ErrUnexpectedStatus is returned when the API returns a non-OK HTTP status
	ErrUnexpectedStatus = errors.New("unexpected generation API response status")
	// ErrEmptyResponse is returned when the response carries no candidate text
	ErrEmptyResponse = errors.New("generation response contained no candidates")
)
