package broadcast

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Memory is an in-process queue used when RabbitMQ is disabled. Pending jobs
// are lost on restart; their rows stay in status pending.
type Memory struct {
	jobs    chan Job
	quit    chan struct{}
	workers int

	mu      sync.Mutex
	closed  bool
	sending sync.WaitGroup
	wg      sync.WaitGroup
}

func NewMemory(size, workers int) *Memory {
	if workers <= 0 {
		workers = 1
	}

	return &Memory{
		jobs:    make(chan Job, size),
		quit:    make(chan struct{}),
		workers: workers,
	}
}

// Publish never waits for the workers. Jobs that do not fit in the buffer are
// handed to a goroutine that feeds them in as the workers catch up.
func (m *Memory) Publish(ctx context.Context, jobs []Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.sending.Add(1)
	m.mu.Unlock()

	for i, job := range jobs {
		select {
		case m.jobs <- job:
		default:
			go m.enqueue(jobs[i:])
			return nil
		}
	}
	m.sending.Done()

	return nil
}

func (m *Memory) enqueue(jobs []Job) {
	defer m.sending.Done()

	for i, job := range jobs {
		select {
		case m.jobs <- job:
		case <-m.quit:
			zap.L().Warn("broadcast queue closed, jobs dropped", zap.Int("count", len(jobs)-i))
			return
		}
	}
}

// Consume starts the workers. Each job gets one retry.
func (m *Memory) Consume(ctx context.Context, handler Handler) error {
	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-m.jobs:
					if !ok {
						return
					}
					if err := handler(ctx, job); err != nil {
						if err = handler(ctx, job); err != nil {
							zap.L().Warn("broadcast job dropped", zap.Uint("message_id", job.MessageID), zap.Error(err))
						}
					}
				}
			}
		}()
	}

	return nil
}

// Close stops accepting jobs and waits for the workers to drain the buffer.
// Overflow jobs still waiting for room are dropped.
func (m *Memory) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.wg.Wait()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	close(m.quit)
	m.sending.Wait()
	close(m.jobs)
	m.wg.Wait()

	return nil
}
