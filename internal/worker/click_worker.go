package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ClickStore persists accumulated click counts.
type ClickStore interface {
	AddClicks(ctx context.Context, code string, n int64) error
}

// ClickWorkerPool coalesces redirect clicks per short code and flushes them in batches.
type ClickWorkerPool struct {
	store        ClickStore
	requestChan  chan string
	batchSize    int
	batchTimeout time.Duration
	workerCount  int
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shutdownOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

type Config struct {
	WorkerCount  int           // number of workers
	BufferSize   int           // request channel capacity
	BatchSize    int           // clicks accumulated before a flush
	BatchTimeout time.Duration // max time a click waits before a flush
}

func DefaultConfig() Config {
	return Config{
		WorkerCount:  2,
		BufferSize:   1000,
		BatchSize:    50,
		BatchTimeout: time.Second,
	}
}

func NewClickWorkerPool(store ClickStore, config Config) *ClickWorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &ClickWorkerPool{
		store:        store,
		requestChan:  make(chan string, config.BufferSize),
		batchSize:    config.BatchSize,
		batchTimeout: config.BatchTimeout,
		workerCount:  config.WorkerCount,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (p *ClickWorkerPool) Start() {
	log.Info().
		Int("workers", p.workerCount).
		Int("batchSize", p.batchSize).
		Dur("batchTimeout", p.batchTimeout).
		Msg("Starting click worker pool")

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *ClickWorkerPool) worker(id int) {
	defer p.wg.Done()

	log.Debug().Int("workerID", id).Msg("Click worker started")

	batch := make(map[string]int64) // short code -> clicks
	pending := 0
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) == 0 {
			return
		}

		// Flushes must land even when shutdown cancelled p.ctx.
		ctx := context.WithoutCancel(p.ctx)

		for code, clicks := range batch {
			if err := p.store.AddClicks(ctx, code, clicks); err != nil {
				log.Error().
					Err(err).
					Int("workerID", id).
					Str("shortCode", code).
					Int64("clicks", clicks).
					Msg("Failed to record clicks")
			} else {
				log.Debug().
					Int("workerID", id).
					Str("shortCode", code).
					Int64("clicks", clicks).
					Msg("Recorded clicks")
			}
		}

		clear(batch)
		pending = 0
	}

	startTimer := func() {
		if timer == nil {
			timer = time.NewTimer(p.batchTimeout)
		} else {
			timer.Reset(p.batchTimeout)
		}
		timerC = timer.C
	}

	stopTimer := func() {
		if timer == nil {
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timerC = nil
	}

	for {
		select {
		case <-p.ctx.Done():
			log.Debug().Int("workerID", id).Msg("Click worker shutting down")
			flush()
			stopTimer()
			return

		case code, ok := <-p.requestChan:
			if !ok {
				flush()
				stopTimer()
				return
			}

			if pending == 0 {
				startTimer()
			}
			batch[code]++
			pending++

			if pending >= p.batchSize {
				flush()
				stopTimer()
			}

		case <-timerC:
			timerC = nil
			flush()
		}
	}
}

// Record queues one click for code. It never blocks the redirect path: when the queue is full
// the click is written through synchronously.
func (p *ClickWorkerPool) Record(ctx context.Context, code string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return context.Canceled
	}

	select {
	case p.requestChan <- code:
		return nil
	default:
		log.Warn().Str("shortCode", code).Msg("Click queue is full, writing through")
		return p.store.AddClicks(ctx, code, 1)
	}
}

// Shutdown stops accepting clicks and waits for queued ones to be flushed.
func (p *ClickWorkerPool) Shutdown(timeout time.Duration) error {
	var shutdownErr error

	p.shutdownOnce.Do(func() {
		log.Info().Msg("Shutting down click worker pool")

		p.mu.Lock()
		p.closed = true
		close(p.requestChan)
		p.mu.Unlock()

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Info().Msg("Click worker pool shut down gracefully")
		case <-time.After(timeout):
			log.Warn().Msg("Click worker pool shutdown timeout, forcing shutdown")
			p.cancel()
			<-done
			shutdownErr = context.DeadlineExceeded
		}
		p.cancel()
	})

	return shutdownErr
}

func (p *ClickWorkerPool) Stats() PoolStats {
	return PoolStats{
		QueueSize:   len(p.requestChan),
		QueueCap:    cap(p.requestChan),
		WorkerCount: p.workerCount,
	}
}

type PoolStats struct {
	QueueSize   int
	QueueCap    int
	WorkerCount int
}
