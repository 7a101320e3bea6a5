package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"go.uber.org/zap"
)

// Определение ошибок очереди.
var (
	ErrJobQueueIsFull = errors.New("job queue is full")
	ErrJobQueueClosed = errors.New("job queue is closed")
)

// Job представляет собой функцию, выполняющуюся в очереди заданий.
type Job func(ctx context.Context)

// JobQueueService пул воркеров с ограниченной очередью заданий.
type JobQueueService struct {
	jobs   chan Job       // Канал для очереди заданий.
	wg     sync.WaitGroup // Группа ожидания для отслеживания горутин.
	mu     sync.RWMutex   // Защищает закрытие канала от одновременной отправки.
	closed bool
}

// NewJobQueueService создает новый экземпляр JobQueueService.
// Параметры:
// - ctx: контекст, передаваемый заданиям.
// - capacity: емкость очереди заданий.
// - workers: количество воркеров, обрабатывающих задания.
func NewJobQueueService(ctx context.Context, capacity, workers int) *JobQueueService {
	service := &JobQueueService{
		jobs: make(chan Job, capacity),
	}
	service.start(ctx, workers)

	return service
}

// start запускает заданное количество воркеров для обработки заданий.
func (jqs *JobQueueService) start(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		jqs.wg.Add(1)

		go func() {
			defer jqs.wg.Done()

			// Канал закрывается в Shutdown, оставшиеся задания выполняются до конца.
			for job := range jqs.jobs {
				job(ctx)
			}
		}()
	}
}

// Enqueue добавляет новое задание в очередь без ожидания.
// Возвращает ошибку, если очередь заполнена или закрыта.
func (jqs *JobQueueService) Enqueue(job Job) error {
	jqs.mu.RLock()
	defer jqs.mu.RUnlock()

	if jqs.closed {
		return ErrJobQueueClosed
	}

	select {
	case jqs.jobs <- job:
		return nil
	default:
		return ErrJobQueueIsFull
	}
}

// ScheduleJob планирует постановку задания в очередь через заданную задержку.
func (jqs *JobQueueService) ScheduleJob(job Job, delay time.Duration) {
	time.AfterFunc(delay, func() {
		if err := jqs.Enqueue(job); err != nil {
			logger.Log.Warn("failed to schedule job", zap.Duration("delay", delay), zap.Error(err))
		}
	})
}

// Shutdown корректно завершает работу очереди заданий.
// Закрывает канал заданий и ожидает завершения всех воркеров.
func (jqs *JobQueueService) Shutdown() {
	jqs.mu.Lock()
	if jqs.closed {
		jqs.mu.Unlock()
		return
	}
	jqs.closed = true
	close(jqs.jobs)
	jqs.mu.Unlock()

	jqs.wg.Wait()
}
