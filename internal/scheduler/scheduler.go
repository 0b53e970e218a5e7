package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs periodic housekeeping jobs, such as evicting idle sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
}

func New() *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{scheduler: s}
}

func (s *Scheduler) Every(interval time.Duration, name string, job func()) error {
	if interval <= 0 {
		return fmt.Errorf("job [%s]: interval must be positive", name)
	}
	if _, err := s.scheduler.Every(interval).Name(name).Do(job); err != nil {
		return fmt.Errorf("schedule job [%s]: %w", name, err)
	}
	log.Debugf("job [%s] scheduled every %s", name, interval)
	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
