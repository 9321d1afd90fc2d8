package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
	"tutor_search_bot/internal/domain/wizard"
	"tutor_search_bot/internal/infra/metrics"
)

// ErrNoSession is returned for actions on a chat without an active wizard.
var ErrNoSession = errors.New("no active wizard session")

// RendererFactory builds the renderer bound to a chat.
type RendererFactory func(chatID int64) wizard.Renderer

// WizardService routes chat actions to the chat's wizard session and
// starts searches when a transition asks for one.
type WizardService struct {
	store       *SessionStore
	client      search.Client
	newRenderer RendererFactory
	catalog     wizard.Catalog
	grid        availability.Grid
	metrics     *metrics.SearchMetrics
	logger      *logrus.Entry
	now         func() time.Time

	searches sync.WaitGroup
}

func NewWizardService(
	store *SessionStore,
	client search.Client,
	newRenderer RendererFactory,
	catalog wizard.Catalog,
	grid availability.Grid,
	m *metrics.SearchMetrics,
	logger *logrus.Entry,
) *WizardService {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &WizardService{
		store:       store,
		client:      client,
		newRenderer: newRenderer,
		catalog:     catalog,
		grid:        grid,
		metrics:     m,
		logger:      logger.WithField("component", "wizard_service"),
		now:         time.Now,
	}
}

// Catalog returns the selectable subjects and levels.
func (s *WizardService) Catalog() wizard.Catalog { return s.catalog }

// Start opens the chat's wizard, or resets it when one already exists.
func (s *WizardService) Start(_ context.Context, chatID int64) {
	sess, created := s.store.GetOrCreate(chatID, func() *Session {
		renderer := s.newRenderer(chatID)
		state := wizard.New(s.catalog, s.grid, renderer)
		newSearch := func(guard sync.Locker) *Orchestrator {
			return NewOrchestrator(s.client, renderer, guard, s.logger.WithField("chat_id", chatID), s.metrics)
		}
		return newSession(chatID, state, newSearch, s.now())
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(s.now())
	if created {
		s.logger.WithField("chat_id", chatID).Info("Wizard session created")
		sess.state.Start()
		return
	}
	s.logger.WithField("chat_id", chatID).Info("Wizard session restarted")
	sess.search.Invalidate()
	sess.state.Reset()
}

// Reset reinitialises the chat's wizard and drops in-flight searches.
func (s *WizardService) Reset(_ context.Context, chatID int64) error {
	return s.withSession(chatID, func(sess *Session) error {
		sess.search.Invalidate()
		sess.state.Reset()
		return nil
	})
}

func (s *WizardService) SelectSubject(_ context.Context, chatID int64, subject string) error {
	return s.withSession(chatID, func(sess *Session) error {
		return sess.state.SelectSubject(subject)
	})
}

func (s *WizardService) SelectLevel(_ context.Context, chatID int64, level string) error {
	return s.withSession(chatID, func(sess *Session) error {
		return sess.state.SelectLevel(level)
	})
}

// ToggleSlot flips an availability cell and returns its new membership.
func (s *WizardService) ToggleSlot(_ context.Context, chatID int64, slot availability.Slot) (bool, error) {
	var selected bool
	err := s.withSession(chatID, func(sess *Session) error {
		var err error
		selected, err = sess.state.ToggleSlot(slot)
		return err
	})
	return selected, err
}

func (s *WizardService) Advance(ctx context.Context, chatID int64) (wizard.Transition, error) {
	return s.transition(ctx, chatID, (*wizard.State).Advance)
}

func (s *WizardService) Skip(ctx context.Context, chatID int64) (wizard.Transition, error) {
	return s.transition(ctx, chatID, (*wizard.State).Skip)
}

// Refine applies the refinement inputs and searches again.
func (s *WizardService) Refine(ctx context.Context, chatID int64, queryText, ratingText string) error {
	_, err := s.transition(ctx, chatID, func(st *wizard.State) (wizard.Transition, error) {
		return st.Refine(queryText, ratingText)
	})
	return err
}

// Snapshot returns the chat's current step and criteria.
func (s *WizardService) Snapshot(chatID int64) (wizard.Step, search.Criteria, error) {
	var (
		step     wizard.Step
		criteria search.Criteria
	)
	err := s.withSession(chatID, func(sess *Session) error {
		step = sess.state.Step()
		criteria = sess.state.Criteria()
		return nil
	})
	return step, criteria, err
}

// SweepIdle drops sessions inactive for longer than maxIdle.
func (s *WizardService) SweepIdle(maxIdle time.Duration) int {
	removed := s.store.SweepIdle(s.now().Add(-maxIdle))
	if removed > 0 {
		s.logger.WithField("removed", removed).Info("Idle wizard sessions swept")
	}
	return removed
}

// Wait blocks until every started search has finished.
func (s *WizardService) Wait() {
	s.searches.Wait()
}

func (s *WizardService) transition(ctx context.Context, chatID int64, fn func(*wizard.State) (wizard.Transition, error)) (wizard.Transition, error) {
	var (
		tr       wizard.Transition
		criteria search.Criteria
		orch     *Orchestrator
		token    uint64
	)
	err := s.withSession(chatID, func(sess *Session) error {
		var err error
		tr, err = fn(sess.state)
		if err != nil {
			return err
		}
		if tr.Search {
			// Reserved under the session lock so a later reset always
			// invalidates it.
			criteria = sess.state.Criteria()
			orch = sess.search
			token = orch.Begin()
		}
		return nil
	})
	if err != nil {
		return tr, err
	}
	if orch != nil {
		s.startSearch(ctx, chatID, orch, token, criteria)
	}
	return tr, nil
}

// startSearch runs the round trip in the background so the chat's
// handlers stay responsive. Cancelling ctx aborts the request.
func (s *WizardService) startSearch(ctx context.Context, chatID int64, orch *Orchestrator, token uint64, criteria search.Criteria) {
	s.logger.WithFields(logrus.Fields{"chat_id": chatID, "search_token": token}).Debug("Starting search")
	s.searches.Add(1)
	go func() {
		defer s.searches.Done()
		orch.Run(ctx, token, criteria)
	}()
}

func (s *WizardService) withSession(chatID int64, fn func(*Session) error) error {
	sess, ok := s.store.Get(chatID)
	if !ok {
		return ErrNoSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(s.now())
	return fn(sess)
}
