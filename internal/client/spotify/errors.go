package spotify

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrNotFound indicates that the requested entity does not exist in the catalog.
	ErrNotFound = errors.New("entity not found")
	// ErrUnauthorized indicates that the access token was rejected even after re-authentication.
	ErrUnauthorized = errors.New("authorization rejected")
	// ErrEmptyAccessToken indicates that the token exchange returned no access token.
	ErrEmptyAccessToken = errors.New("token exchange returned an empty access token")
	// ErrEmptyStreamURL indicates that the stream resolution response carried no URL.
	ErrEmptyStreamURL = errors.New("stream metadata contains no URL")
	// ErrFailedAfterRetries indicates that a request kept failing after all retry attempts.
	ErrFailedAfterRetries = errors.New("request failed after retries")
)
