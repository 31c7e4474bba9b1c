package cache

import (
	"context"
	"time"
)

// Purger is anything that can drop expired entries on demand.
type Purger interface {
	Purge() int
}

// Janitor periodically purges one or more caches until its context is
// cancelled.
type Janitor struct {
	interval time.Duration
	caches   []Purger
}

func NewJanitor(interval time.Duration, caches ...Purger) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{interval: interval, caches: caches}
}

// Run blocks, purging on every tick, and returns when ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, c := range j.caches {
				c.Purge()
			}
		}
	}
}
