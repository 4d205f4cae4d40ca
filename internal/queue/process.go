package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/OFFIS-RIT/feedlens/internal/storage"
	"github.com/OFFIS-RIT/feedlens/internal/util"
	"github.com/OFFIS-RIT/feedlens/pkg/analysis"
	"github.com/OFFIS-RIT/feedlens/pkg/leaselock"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	"github.com/OFFIS-RIT/feedlens/pkg/sentiment"
	"github.com/OFFIS-RIT/feedlens/pkg/store"

	"github.com/rabbitmq/amqp091-go"
)

const (
	storeAttempts   = 3
	storeRetryDelay = 500 * time.Millisecond
)

// ErrInvalidMessage marks a message that can never be processed.
var ErrInvalidMessage = errors.New("invalid queue message")

// QueueReportMsg is the body of a report job.
type QueueReportMsg struct {
	Message  string `json:"message,omitempty"`
	ReportID string `json:"report_id"`
}

// Locker serializes the processing of one report across workers.
// *leaselock.Client implements it.
type Locker interface {
	WithLease(ctx context.Context, key string, opts leaselock.Options, fn func(ctx context.Context) error) error
}

// ReportPublisher enqueues report jobs. It may be shared by concurrent
// requests.
type ReportPublisher struct {
	mu sync.Mutex
	ch Channel
}

// NewReportPublisher publishes report jobs on ch.
func NewReportPublisher(ch Channel) *ReportPublisher {
	return &ReportPublisher{ch: ch}
}

// PublishReport enqueues the report with the given id.
func (p *ReportPublisher) PublishReport(ctx context.Context, reportID string) error {
	data, err := json.Marshal(QueueReportMsg{
		Message:  "Report requested",
		ReportID: reportID,
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishFIFO(ctx, p.ch, ReportQueue, data)
}

// ReportProcessor runs report jobs.
type ReportProcessor struct {
	Pipeline *analysis.Pipeline
	Store    store.ReportStore
	Objects  storage.ObjectStore
	Locker   Locker
	Lease    leaselock.Options
}

// ProcessReportMessage runs the analysis for the report named in msg and
// stores the result. Reports that were deleted or already finished are
// skipped. A document the analysis rejects fails the report without an
// error, so the message is not retried.
func (p *ReportProcessor) ProcessReportMessage(ctx context.Context, msg []byte) error {
	data, err := decodeReportMsg(msg)
	if err != nil {
		return err
	}
	id := data.ReportID

	opts := p.Lease
	if opts.TokenPrefix == "" {
		opts.TokenPrefix = "report/" + id + "/"
	}

	return p.Locker.WithLease(ctx, leaselock.ReportKey(id), opts, func(ctx context.Context) error {
		report, err := p.Store.GetReport(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			logger.Info("[Report] Report no longer exists, skipping", "id", id)
			return nil
		}
		if err != nil {
			return err
		}
		if report.Status.Done() {
			logger.Info("[Report] Report already finished, skipping", "id", id, "status", report.Status)
			return nil
		}

		if err := p.Store.MarkProcessing(ctx, id); err != nil {
			return err
		}

		input, err := p.Objects.GetText(ctx, report.InputKey)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return p.Store.FailReport(ctx, id, "submitted document is missing")
		}
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := p.Pipeline.Report(ctx, input, report.WithSwot)
		if errors.Is(err, sentiment.ErrEmptyInput) {
			logger.Warn("[Report] Document has no analysable text", "id", id)
			return p.Store.FailReport(ctx, id, err.Error())
		}
		if err != nil {
			return fmt.Errorf("report %s: %w", id, err)
		}

		err = util.RetryErrWithContext(ctx, storeAttempts, storeRetryDelay, func(ctx context.Context) error {
			return p.Store.CompleteReport(ctx, id, result)
		})
		if errors.Is(err, store.ErrNotFound) {
			logger.Info("[Report] Report deleted while processing, dropping result", "id", id)
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("[Report] Report completed", "id", id, "duration_sec", time.Since(start).Seconds())
		return nil
	})
}

// Handle processes one delivery and settles it: ack on success, retry on
// failure, and dead letter for invalid messages or once retries run out.
// A dead-lettered report is marked failed.
func (p *ReportProcessor) Handle(ctx context.Context, ch Channel, msg amqp091.Delivery) error {
	processingErr := p.ProcessReportMessage(ctx, msg.Body)
	if processingErr == nil {
		if err := msg.Ack(false); err != nil {
			logger.Error("[Queue] Failed to ack message", "err", err)
		}
		return nil
	}

	logger.Error("[Queue] Error processing message", "queue", ReportQueue, "err", processingErr)

	var deadLettered bool
	if errors.Is(processingErr, ErrInvalidMessage) {
		deadLettered = DeadLetter(ctx, ch, msg, ReportQueue)
	} else {
		deadLettered = HandleProcessingError(ctx, ch, msg, ReportQueue)
	}

	if deadLettered {
		p.failDeadLettered(ctx, msg.Body, processingErr)
	}
	return processingErr
}

func (p *ReportProcessor) failDeadLettered(ctx context.Context, body []byte, cause error) {
	data, err := decodeReportMsg(body)
	if err != nil {
		return
	}
	if err := p.Store.FailReport(ctx, data.ReportID, cause.Error()); err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Error("[Report] Failed to mark report failed", "id", data.ReportID, "err", err)
	}
}

func decodeReportMsg(msg []byte) (QueueReportMsg, error) {
	var data QueueReportMsg
	if err := json.Unmarshal(msg, &data); err != nil {
		return data, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	data.ReportID = strings.TrimSpace(data.ReportID)
	if data.ReportID == "" {
		return data, fmt.Errorf("%w: missing report_id", ErrInvalidMessage)
	}
	return data, nil
}
