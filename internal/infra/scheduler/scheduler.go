package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper drops wizard sessions idle for longer than maxIdle.
type Sweeper interface {
	SweepIdle(maxIdle time.Duration) int
}

// SessionScheduler runs the periodic idle-session sweep.
type SessionScheduler struct {
	cronEngine *cron.Cron
	sweeper    Sweeper
	logger     *logrus.Entry
	spec       string
	idleTTL    time.Duration
}

func NewSessionScheduler(sweeper Sweeper, logger *logrus.Entry, spec string, idleTTL time.Duration) *SessionScheduler {
	return &SessionScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		sweeper:    sweeper,
		logger:     logger,
		spec:       spec,
		idleTTL:    idleTTL,
	}
}

func (s *SessionScheduler) Start() error {
	s.logger.Info("Starting session scheduler...")

	if _, err := s.cronEngine.AddFunc(s.spec, s.Sweep); err != nil {
		return fmt.Errorf("could not add session sweep cron job %q: %w", s.spec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.spec).Info("Session scheduler started.")
	return nil
}

// Sweep runs one pass immediately.
func (s *SessionScheduler) Sweep() {
	removed := s.sweeper.SweepIdle(s.idleTTL)
	s.logger.WithFields(logrus.Fields{
		"removed":  removed,
		"idle_ttl": s.idleTTL.String(),
	}).Debug("Session sweep finished")
}

func (s *SessionScheduler) Stop() {
	s.logger.Info("Stopping session scheduler...")
	ctx := s.cronEngine.Stop() // Waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Session scheduler gracefully stopped.")
}
