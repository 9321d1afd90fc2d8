package search

import "fmt"

// NetworkError means the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("search request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError means the API answered with a non-2xx status.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// DecodeError means the body was not a valid search result.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid search response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
