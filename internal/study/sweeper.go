package study

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper periodically expires idle sessions.
type Sweeper struct {
	scheduler *gocron.Scheduler
	svc       *Service
	ttl       time.Duration
	every     time.Duration
}

func NewSweeper(svc *Service, ttl, every time.Duration) *Sweeper {
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		ttl:       ttl,
		every:     every,
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.scheduler.Every(s.every).Do(s.run); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *Sweeper) Stop() { s.scheduler.Stop() }

func (s *Sweeper) run() {
	if n := s.svc.Sweep(context.Background(), s.ttl); n > 0 {
		log.Printf("study: expired %d idle sessions", n)
	}
}
