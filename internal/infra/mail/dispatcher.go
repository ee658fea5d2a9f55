package mail

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"smarthr/internal/domain/service"
)

// Dispatch outcomes reported to metrics.
const (
	outcomeSent    = "sent"
	outcomeFailed  = "failed"
	outcomeDropped = "dropped"
)

// Dispatcher drains a bounded queue on one worker goroutine. Enqueueing never
// blocks; a full queue drops the message. Send errors and panics are logged.
type Dispatcher struct {
	mailer      service.Mailer
	logger      *slog.Logger
	metrics     service.AuthMetrics
	sendTimeout time.Duration

	ch        chan service.MailMessage
	done      chan struct{}
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
	dropped   atomic.Uint64
}

// NewDispatcher starts the worker immediately.
func NewDispatcher(mailer service.Mailer, logger *slog.Logger, metrics service.AuthMetrics, bufferSize int, sendTimeout time.Duration) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if metrics == nil {
		metrics = service.NopMetrics{}
	}

	d := &Dispatcher{
		mailer:      mailer,
		logger:      logger,
		metrics:     metrics,
		sendTimeout: sendTimeout,
		ch:          make(chan service.MailMessage, bufferSize),
		done:        make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

var _ service.MailDispatcher = (*Dispatcher)(nil)

func (d *Dispatcher) Dispatch(msg service.MailMessage) {
	if d == nil || d.closed.Load() {
		return
	}

	select {
	case d.ch <- msg:
	case <-d.done:
	default:
		d.dropped.Add(1)
		d.metrics.MailDispatch(outcomeDropped)
		d.logger.Warn("mail queue full, message dropped",
			slog.String("subject", msg.Subject),
			slog.String("request_id", msg.RequestID),
		)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.ch:
			d.deliver(msg)
		case <-d.done:
			for {
				select {
				case msg := <-d.ch:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(msg service.MailMessage) {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.MailDispatch(outcomeFailed)
			d.logger.Error("mail delivery panicked",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("request_id", msg.RequestID),
			)
		}
	}()

	ctx := context.Background()
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		d.metrics.MailDispatch(outcomeFailed)
		d.logger.Warn("mail delivery failed",
			slog.String("subject", msg.Subject),
			slog.String("request_id", msg.RequestID),
			slog.Any("error", err),
		)

		return
	}
	d.metrics.MailDispatch(outcomeSent)
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped counts messages rejected because the queue was full.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}
