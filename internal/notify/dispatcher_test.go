package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ignatzorin/bookstore-backend/internal/logger"
	"github.com/ignatzorin/bookstore-backend/internal/models"
)

// recordingSender запоминает отправленные коды.
type recordingSender struct {
	mu    sync.Mutex
	sent  []string
	err   error
	delay time.Duration
}

func (s *recordingSender) SendCode(_ context.Context, identifier, code string) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, identifier+":"+code)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestDispatcher_RoutesByChannel(t *testing.T) {
	logger.Init("error")

	email := &recordingSender{}
	sms := &recordingSender{}
	d := NewDispatcher(email, sms, 2, 16)

	d.Dispatch(Task{Channel: models.AuthTypeEmail, Identifier: "user@example.com", Code: "123456"})
	d.Dispatch(Task{Channel: models.AuthTypePhone, Identifier: "+998901234567", Code: "654321"})
	d.Close()

	if email.count() != 1 {
		t.Fatalf("ожидали одну отправку email, получили %d", email.count())
	}
	if sms.count() != 1 {
		t.Fatalf("ожидали одну отправку SMS, получили %d", sms.count())
	}
}

func TestDispatcher_SenderFailureDoesNotStopWorkers(t *testing.T) {
	logger.Init("error")

	email := &recordingSender{err: errors.New("smtp unavailable")}
	sms := &recordingSender{}
	d := NewDispatcher(email, sms, 1, 16)

	d.Dispatch(Task{Channel: models.AuthTypeEmail, Identifier: "user@example.com", Code: "123456"})
	d.Dispatch(Task{Channel: models.AuthTypePhone, Identifier: "+998901234567", Code: "654321"})
	d.Close()

	if sms.count() != 1 {
		t.Fatal("ошибка одного задания не должна останавливать очередь")
	}
}

func TestDispatcher_OverflowDropsTask(t *testing.T) {
	logger.Init("error")

	email := &recordingSender{delay: 50 * time.Millisecond}
	d := NewDispatcher(email, &recordingSender{}, 1, 1)

	// Первый таск занимает воркера, второй ложится в очередь,
	// остальные отбрасываются без блокировки.
	for i := 0; i < 10; i++ {
		d.Dispatch(Task{Channel: models.AuthTypeEmail, Identifier: "user@example.com", Code: "123456"})
	}
	d.Close()

	if email.count() >= 10 {
		t.Fatalf("переполнение очереди должно отбрасывать задания, отправлено %d", email.count())
	}
	if email.count() == 0 {
		t.Fatal("хотя бы одно задание должно быть обработано")
	}
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	logger.Init("error")

	d := NewDispatcher(&recordingSender{}, &recordingSender{}, 1, 1)
	d.Close()
	d.Close()
}
