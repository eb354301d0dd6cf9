package workers

import (
	"context"
	"log"
	"sync"
	"time"
)

// Job is one pass of a background worker.
type Job func(ctx context.Context) error

// Periodic runs a Job on a fixed interval until stopped.
type Periodic struct {
	name     string
	interval time.Duration
	job      Job

	cancel   context.CancelFunc
	doneChan chan struct{}
	stopOnce sync.Once
}

func NewPeriodic(name string, interval time.Duration, job Job) *Periodic {
	return &Periodic{name: name, interval: interval, job: job}
}

func (p *Periodic) Name() string { return p.name }

// Start runs the job once immediately, then every interval.
func (p *Periodic) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.doneChan = make(chan struct{})

	go p.run(ctx)
	log.Printf("[%s] started interval=%s", p.name, p.interval)
}

func (p *Periodic) run(ctx context.Context) {
	defer close(p.doneChan)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Periodic) tick(ctx context.Context) {
	if err := p.job(ctx); err != nil && ctx.Err() == nil {
		log.Printf("[%s][err] %v", p.name, err)
	}
}

// Stop cancels the running pass and waits for the loop to exit.
func (p *Periodic) Stop(ctx context.Context) error {
	if p.cancel == nil {
		return nil
	}
	p.stopOnce.Do(p.cancel)

	select {
	case <-p.doneChan:
		log.Printf("[%s] stopped", p.name)
		return nil
	case <-ctx.Done():
		log.Printf("[%s] shutdown timeout exceeded", p.name)
		return ctx.Err()
	}
}
