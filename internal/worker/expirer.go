package worker

import (
	"context"
	"sync"
	"time"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error)
}

// Metrics метрики фоновых задач
type Metrics interface {
	AddSessionsExpired(n int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Expirer периодически переводит неподтверждённые pending сессии в expired,
// освобождая их подслоты
type Expirer struct {
	repo     SessionRepository
	metrics  Metrics
	logger   Logger
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewExpirer создаёт новый Expirer
func NewExpirer(repo SessionRepository, metrics Metrics, ttl, interval time.Duration, logger Logger) *Expirer {
	return &Expirer{
		repo:     repo,
		metrics:  metrics,
		logger:   logger,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (e *Expirer) Start(ctx context.Context) {
	e.logger.Info("Expirer: starting, ttl=%s, interval=%s", e.ttl, e.interval)

	e.wg.Add(1)
	go e.run(ctx)
}

// Stop останавливает задачу и ждёт завершения текущего прохода
func (e *Expirer) Stop() {
	e.stopOnce.Do(func() {
		e.logger.Info("Expirer: stopping")
		close(e.stopChan)
	})
	e.wg.Wait()
}

func (e *Expirer) run(ctx context.Context) {
	defer e.wg.Done()

	// Первый проход сразу при старте
	e.RunOnce(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.RunOnce(ctx)
		case <-e.stopChan:
			e.logger.Info("Expirer: stopped")
			return
		case <-ctx.Done():
			e.logger.Info("Expirer: cancelled")
			return
		}
	}
}

// RunOnce выполняет один проход и возвращает количество истёкших сессий
func (e *Expirer) RunOnce(ctx context.Context) int64 {
	cutoff := e.now().Add(-e.ttl)

	n, err := e.repo.ExpirePending(ctx, cutoff)
	if err != nil {
		e.logger.Error("Expirer: failed to expire pending sessions: %v", err)
		return 0
	}

	if n > 0 {
		e.logger.Info("Expirer: expired %d pending sessions created before %s", n, cutoff.Format(time.RFC3339))
		if e.metrics != nil {
			e.metrics.AddSessionsExpired(n)
		}
	}

	return n
}
