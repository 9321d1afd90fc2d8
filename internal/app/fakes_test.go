package app

import (
	"context"
	"strconv"
	"sync"

	"tutor_search_bot/internal/domain/search"
)

// fakeClient answers searches through fn and records the criteria it saw.
type fakeClient struct {
	mu    sync.Mutex
	calls []search.Criteria
	fn    func(ctx context.Context, c search.Criteria) (*search.Result, error)
}

func (f *fakeClient) Search(ctx context.Context, c search.Criteria) (*search.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	if f.fn == nil {
		return &search.Result{}, nil
	}
	return f.fn(ctx, c)
}

func (f *fakeClient) Calls() []search.Criteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]search.Criteria, len(f.calls))
	copy(out, f.calls)
	return out
}

func resultWith(names ...string) *search.Result {
	res := &search.Result{
		Pagination: &search.Pagination{NumberOfElements: len(names), TotalElements: int64(len(names)), TotalPages: 1},
		TimeTaken:  12,
	}
	for i, n := range names {
		res.Teachers = append(res.Teachers, search.Tutor{ID: strconv.Itoa(i + 1), Name: n})
	}
	return res
}
