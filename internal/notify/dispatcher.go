package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/bookstore-backend/internal/goroutine"
	"github.com/ignatzorin/bookstore-backend/internal/logger"
	"github.com/ignatzorin/bookstore-backend/internal/models"
)

const sendTimeout = 10 * time.Second

// Task — задание на отправку кода подтверждения.
type Task struct {
	Channel    models.AuthType
	Identifier string
	Code       string
}

// Dispatcher раздаёт задания пулу воркеров через буферизированный канал.
// Отправка не блокирует запрос: при переполнении очереди задание
// отбрасывается с записью в лог.
type Dispatcher struct {
	email EmailSender
	sms   SMSSender

	tasks chan Task
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewDispatcher создаёт диспетчер и запускает workers воркеров.
func NewDispatcher(email EmailSender, sms SMSSender, workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		email: email,
		sms:   sms,
		tasks: make(chan Task, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		goroutine.SafeGo(func() {
			defer d.wg.Done()
			d.worker()
		})
	}

	return d
}

// Dispatch ставит задание в очередь. Никогда не блокирует: если очередь
// полна, задание теряется, а факт потери логируется.
func (d *Dispatcher) Dispatch(task Task) {
	select {
	case d.tasks <- task:
	default:
		logger.Log.WithFields(logrus.Fields{
			"channel":    task.Channel,
			"identifier": task.Identifier,
		}).Warn("Очередь уведомлений переполнена, задание отброшено")
	}
}

// Close закрывает очередь и дожидается завершения воркеров.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	for task := range d.tasks {
		d.process(task)
	}
}

func (d *Dispatcher) process(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	var err error
	switch task.Channel {
	case models.AuthTypePhone:
		err = d.sms.SendCode(ctx, task.Identifier, task.Code)
	default:
		err = d.email.SendCode(ctx, task.Identifier, task.Code)
	}

	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"channel":    task.Channel,
			"identifier": task.Identifier,
		}).WithError(err).Error("Не удалось отправить код подтверждения")
	}
}
