package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"tutor_search_bot/internal/domain/search"
	"tutor_search_bot/internal/domain/wizard"
	"tutor_search_bot/internal/infra/metrics"
)

// Orchestrator runs one search round trip and paints its outcome. Each
// search takes a token; only the latest token may render, older
// responses are dropped.
//
// guard is held while the outcome is painted. Whoever invalidates
// searches must hold it too, so a paint never lands after an
// invalidation it did not see.
type Orchestrator struct {
	client   search.Client
	renderer wizard.Renderer
	guard    sync.Locker
	logger   *logrus.Entry
	metrics  *metrics.SearchMetrics
	latest   atomic.Uint64
}

// NewOrchestrator builds an orchestrator painting on renderer. A nil
// guard gets a private mutex.
func NewOrchestrator(client search.Client, renderer wizard.Renderer, guard sync.Locker, logger *logrus.Entry, m *metrics.SearchMetrics) *Orchestrator {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if guard == nil {
		guard = &sync.Mutex{}
	}
	return &Orchestrator{
		client:   client,
		renderer: renderer,
		guard:    guard,
		logger:   logger,
		metrics:  m,
	}
}

// Invalidate makes every in-flight search stale. Call with guard held.
func (o *Orchestrator) Invalidate() {
	o.latest.Add(1)
}

// Begin reserves a search token and shows the results panel with the
// loading indicator. Call with guard held, in the same critical section
// as the transition that asked for the search.
func (o *Orchestrator) Begin() uint64 {
	token := o.latest.Add(1)
	o.renderer.ShowResults()
	o.renderer.RenderLoading(true)
	o.renderer.ClearResults()
	return token
}

// Run performs the request for a token from Begin and paints the
// outcome unless the token went stale. Call without guard held. Run
// never returns an error: failures come back as an error view.
func (o *Orchestrator) Run(ctx context.Context, token uint64, criteria search.Criteria) wizard.ResultView {
	start := time.Now()
	log := o.logger.WithField("search_token", token)

	view, err := o.fetch(ctx, criteria, log)
	elapsed := time.Since(start).Seconds()

	o.guard.Lock()
	defer o.guard.Unlock()

	if o.isStale(token) {
		view.Stale = true
		log.Info("Discarding stale search response")
		o.metrics.ObserveSearch(metrics.OutcomeStale, elapsed)
		return view
	}

	switch view.Kind {
	case wizard.ResultError:
		log.WithError(err).Warn("Search failed")
		o.metrics.ObserveSearch(metrics.OutcomeError, elapsed)
		o.renderer.RenderError(view.Message)
	case wizard.NoResults:
		log.Info("Search returned no tutors")
		o.metrics.ObserveSearch(metrics.OutcomeEmpty, elapsed)
		o.renderer.RenderResults(view)
	default:
		log.WithField("tutors", len(view.Tutors)).Info("Search returned tutors")
		o.metrics.ObserveSearch(metrics.OutcomeResults, elapsed)
		o.renderer.RenderResults(view)
	}
	o.renderer.RenderLoading(false)
	return view
}

// Search is Begin followed by Run, for callers without a session lock.
func (o *Orchestrator) Search(ctx context.Context, criteria search.Criteria) wizard.ResultView {
	o.guard.Lock()
	token := o.Begin()
	o.guard.Unlock()
	return o.Run(ctx, token, criteria)
}

// fetch calls the client, turning failures and panics into an error view.
func (o *Orchestrator) fetch(ctx context.Context, criteria search.Criteria, log *logrus.Entry) (view wizard.ResultView, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		log.WithField("panic", r).Error("Search flow panicked")
		err = fmt.Errorf("search failed: %v", r)
		view = wizard.ErrorView(err)
	}()

	res, err := o.client.Search(ctx, criteria)
	if err != nil {
		return wizard.ErrorView(err), err
	}
	return wizard.NewResultView(res), nil
}

func (o *Orchestrator) isStale(token uint64) bool {
	return o.latest.Load() != token
}
