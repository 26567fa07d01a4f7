package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/timeclock/timeclock-api/internal/api/metrics"
	"github.com/timeclock/timeclock-api/internal/core/ports"
)

const (
	defaultWorkers   = 2
	defaultQueueSize = 64
	sendTimeout      = 30 * time.Second
)

// ErrQueueFull is returned when the worker responsible for a recipient has no
// room left. The caller decides whether to retry.
var ErrQueueFull = errors.New("mail queue is full")

type mailJob struct {
	to   string
	link string
}

// MailDispatcher delivers emails in the background. It implements
// ports.Mailer, so request handlers return as soon as the job is queued.
// Jobs are routed to workers by hashing the recipient, which keeps the emails
// of one recipient in order: a reset link never overtakes a newer one.
type MailDispatcher struct {
	workers []chan mailJob
	mailer  ports.Mailer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewMailDispatcher creates a dispatcher with numWorkers workers, each with a
// buffer of queueSize jobs. Zero or negative values select the defaults.
func NewMailDispatcher(numWorkers, queueSize int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &MailDispatcher{
		workers: make([]chan mailJob, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan mailJob, queueSize)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// use Wait to block until they have returned.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *MailDispatcher) Wait() {
	d.wg.Wait()
}

// SendPasswordReset queues a reset email. It never blocks.
func (d *MailDispatcher) SendPasswordReset(_ context.Context, to, resetLink string) error {
	select {
	case d.workers[d.shardIndex(to)] <- mailJob{to: to, link: resetLink}:
		metrics.MailQueueDepth.Inc()
		return nil
	default:
		metrics.MailDeliveryTotal.WithLabelValues(metrics.ResultDropped).Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(to)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan mailJob) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			if n := len(ch); n > 0 {
				d.log.Warn().Int("worker_id", id).Int("pending", n).Msg("mail worker stopped with pending emails")
			}
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.MailQueueDepth.Dec()
			d.deliver(ctx, id, job)
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, id int, job mailJob) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.mailer.SendPasswordReset(sendCtx, job.to, job.link); err != nil {
		metrics.MailDeliveryTotal.WithLabelValues(metrics.ResultError).Inc()
		d.log.Error().Err(err).
			Str("to", job.to).
			Int("worker_id", id).
			Msg("mail delivery failed")
		return
	}
	metrics.MailDeliveryTotal.WithLabelValues(metrics.ResultOK).Inc()
}
