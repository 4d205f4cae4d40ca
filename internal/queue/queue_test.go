package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/OFFIS-RIT/feedlens/internal/storage"
	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/analysis"
	"github.com/OFFIS-RIT/feedlens/pkg/leaselock"
	"github.com/OFFIS-RIT/feedlens/pkg/store"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedback = "Great product. Great product! Terrible support. Loved the packaging."

type published struct {
	key string
	msg amqp091.Publishing
}

type fakeChannel struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{key: key, msg: msg})
	return nil
}

type fakeAck struct {
	acked    int
	nacked   int
	requeued bool
}

func (a *fakeAck) Ack(tag uint64, multiple bool) error {
	a.acked++
	return nil
}

func (a *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked++
	a.requeued = requeue
	return nil
}

func (a *fakeAck) Reject(tag uint64, requeue bool) error {
	return nil
}

type fakeObjects struct {
	texts map[string]string
}

func (f *fakeObjects) PutText(ctx context.Context, key, text string) error {
	f.texts[key] = text
	return nil
}

func (f *fakeObjects) GetText(ctx context.Context, key string) (string, error) {
	text, ok := f.texts[key]
	if !ok {
		return "", storage.ErrObjectNotFound
	}
	return text, nil
}

func (f *fakeObjects) DeleteFile(ctx context.Context, key string) error {
	delete(f.texts, key)
	return nil
}

type fakeLocker struct {
	keys []string
	busy bool
}

func (f *fakeLocker) WithLease(ctx context.Context, key string, opts leaselock.Options, fn func(ctx context.Context) error) error {
	f.keys = append(f.keys, key)
	if f.busy {
		return leaselock.ErrBusy
	}
	return fn(ctx)
}

type failingClient struct{}

func (failingClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", errors.New("service unavailable")
}

func (failingClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	return errors.New("service unavailable")
}

func (failingClient) ResetMetrics()               {}
func (failingClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func newProcessor(t *testing.T, client ai.TextClient) (*ReportProcessor, *store.MemoryStore, *fakeObjects, *fakeLocker) {
	t.Helper()
	st := store.NewMemoryStore()
	objects := &fakeObjects{texts: map[string]string{}}
	locker := &fakeLocker{}
	return &ReportProcessor{
		Pipeline: analysis.New(client, nil),
		Store:    st,
		Objects:  objects,
		Locker:   locker,
	}, st, objects, locker
}

func submit(t *testing.T, st *store.MemoryStore, objects *fakeObjects, id, text string, withSwot bool) []byte {
	t.Helper()
	key := storage.InputKey(id)
	objects.texts[key] = text
	_, err := st.CreateReport(context.Background(), id, key, withSwot)
	require.NoError(t, err)

	body, err := json.Marshal(QueueReportMsg{ReportID: id})
	require.NoError(t, err)
	return body
}

func delivery(body []byte, ack *fakeAck, headers amqp091.Table) amqp091.Delivery {
	return amqp091.Delivery{Acknowledger: ack, Body: body, Headers: headers}
}

func TestPublishReport(t *testing.T) {
	ch := &fakeChannel{}
	require.NoError(t, NewReportPublisher(ch).PublishReport(context.Background(), "abc"))

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, ReportQueue, ch.msgs[0].key)
	assert.Equal(t, amqp091.Persistent, ch.msgs[0].msg.DeliveryMode)

	var msg QueueReportMsg
	require.NoError(t, json.Unmarshal(ch.msgs[0].msg.Body, &msg))
	assert.Equal(t, "abc", msg.ReportID)
}

func TestProcessReportMessage_Completes(t *testing.T) {
	p, st, objects, locker := newProcessor(t, nil)
	body := submit(t, st, objects, "r1", feedback, false)

	require.NoError(t, p.ProcessReportMessage(context.Background(), body))
	assert.Equal(t, []string{leaselock.ReportKey("r1")}, locker.keys)

	got, err := st.GetReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, 4, got.Result.Summary.TotalSentences)
	assert.Equal(t, 1, got.Result.Summary.NumDuplicates)
	assert.Nil(t, got.Result.Swot)
}

func TestProcessReportMessage_SkipsFinishedAndDeleted(t *testing.T) {
	p, st, objects, _ := newProcessor(t, nil)
	body := submit(t, st, objects, "r1", feedback, false)
	require.NoError(t, st.FailReport(context.Background(), "r1", "earlier failure"))

	require.NoError(t, p.ProcessReportMessage(context.Background(), body))
	got, err := st.GetReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusFailed, got.Status)

	missing, err := json.Marshal(QueueReportMsg{ReportID: "gone"})
	require.NoError(t, err)
	assert.NoError(t, p.ProcessReportMessage(context.Background(), missing))
}

func TestProcessReportMessage_EmptyDocumentFails(t *testing.T) {
	p, st, objects, _ := newProcessor(t, nil)
	body := submit(t, st, objects, "r1", " \n\t ", true)

	require.NoError(t, p.ProcessReportMessage(context.Background(), body))
	got, err := st.GetReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusFailed, got.Status)
	assert.NotEmpty(t, got.Error)
}

func TestProcessReportMessage_MissingInput(t *testing.T) {
	p, st, objects, _ := newProcessor(t, nil)
	body := submit(t, st, objects, "r1", feedback, false)
	delete(objects.texts, storage.InputKey("r1"))

	require.NoError(t, p.ProcessReportMessage(context.Background(), body))
	got, err := st.GetReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusFailed, got.Status)
}

func TestProcessReportMessage_InvalidMessage(t *testing.T) {
	p, _, _, _ := newProcessor(t, nil)
	for _, body := range []string{"not json", `{"report_id":"  "}`} {
		err := p.ProcessReportMessage(context.Background(), []byte(body))
		assert.True(t, errors.Is(err, ErrInvalidMessage), body)
	}
}

func TestHandle_AcksOnSuccess(t *testing.T) {
	p, st, objects, _ := newProcessor(t, nil)
	body := submit(t, st, objects, "r1", feedback, false)
	ch := &fakeChannel{}
	ack := &fakeAck{}

	require.NoError(t, p.Handle(context.Background(), ch, delivery(body, ack, nil)))
	assert.Equal(t, 1, ack.acked)
	assert.Empty(t, ch.msgs)
}

func TestHandle_RetriesGenerationFailure(t *testing.T) {
	p, st, objects, _ := newProcessor(t, failingClient{})
	body := submit(t, st, objects, "r1", feedback, true)
	ch := &fakeChannel{}
	ack := &fakeAck{}

	err := p.Handle(context.Background(), ch, delivery(body, ack, amqp091.Table{retriesHeader: int32(2)}))
	var genErr *ai.GenerationError
	require.True(t, errors.As(err, &genErr))

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, ReportQueue+retrySuffix, ch.msgs[0].key)
	assert.Equal(t, int32(3), ch.msgs[0].msg.Headers[retriesHeader])
	assert.Equal(t, 1, ack.acked)

	got, err := st.GetReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusProcessing, got.Status)
}

func TestHandle_DeadLettersAfterMaxRetries(t *testing.T) {
	p, st, objects, _ := newProcessor(t, failingClient{})
	body := submit(t, st, objects, "r1", feedback, true)
	ch := &fakeChannel{}
	ack := &fakeAck{}

	require.Error(t, p.Handle(context.Background(), ch, delivery(body, ack, amqp091.Table{retriesHeader: int64(MaxRetries)})))
	require.Len(t, ch.msgs, 1)
	assert.Equal(t, ReportQueue+dlqSuffix, ch.msgs[0].key)

	got, err := st.GetReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "service unavailable")
}

func TestHandle_InvalidMessageGoesToDLQ(t *testing.T) {
	p, _, _, _ := newProcessor(t, nil)
	ch := &fakeChannel{}
	ack := &fakeAck{}

	require.Error(t, p.Handle(context.Background(), ch, delivery([]byte("{"), ack, nil)))
	require.Len(t, ch.msgs, 1)
	assert.Equal(t, ReportQueue+dlqSuffix, ch.msgs[0].key)
	assert.Equal(t, 1, ack.acked)
}

func TestHandle_BusyLeaseIsRetried(t *testing.T) {
	p, st, objects, locker := newProcessor(t, nil)
	locker.busy = true
	body := submit(t, st, objects, "r1", feedback, false)
	ch := &fakeChannel{}

	err := p.Handle(context.Background(), ch, delivery(body, &fakeAck{}, nil))
	assert.True(t, errors.Is(err, leaselock.ErrBusy))
	require.Len(t, ch.msgs, 1)
	assert.Equal(t, ReportQueue+retrySuffix, ch.msgs[0].key)
}

func TestHandleProcessingError_RequeuesWhenPublishFails(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	ack := &fakeAck{}

	dead := HandleProcessingError(context.Background(), ch, delivery([]byte("{}"), ack, nil), ReportQueue)
	assert.False(t, dead)
	assert.Equal(t, 0, ack.acked)
	assert.Equal(t, 1, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestRetries(t *testing.T) {
	tests := []struct {
		value any
		want  int
	}{
		{nil, 0},
		{int32(3), 3},
		{int64(7), 7},
		{4, 4},
		{"5", 0},
	}
	for _, tt := range tests {
		msg := amqp091.Delivery{Headers: amqp091.Table{retriesHeader: tt.value}}
		assert.Equal(t, tt.want, Retries(msg), "%v", tt.value)
	}
}
