package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
)

// Evicter drops finished sessions older than retain and reports how many went.
type Evicter interface {
	EvictFinished(ctx context.Context, retain time.Duration) int
}

// Janitor periodically evicts submitted and failed sessions.
type Janitor struct {
	scheduler *gocron.Scheduler
	evicter   Evicter
	interval  time.Duration
	retain    time.Duration
}

func New(evicter Evicter, interval, retain time.Duration) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		evicter:   evicter,
		interval:  interval,
		retain:    retain,
	}
}

// Start schedules the sweep and runs it in the background.
func (j *Janitor) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("janitor interval must be positive, got %s", j.interval)
	}
	if _, err := j.scheduler.Every(j.interval).Do(j.sweep); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	j.scheduler.StartAsync()
	return nil
}

func (j *Janitor) Stop() {
	j.scheduler.Stop()
}

func (j *Janitor) sweep() {
	j.evicter.EvictFinished(context.Background(), j.retain)
}
