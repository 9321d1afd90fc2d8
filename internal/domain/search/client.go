package search

import "context"

// Client performs a tutor search against the external search API.
type Client interface {
	Search(ctx context.Context, criteria Criteria) (*Result, error)
}
