package turbobunny

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nekomeowww/xo/exp/channelx"
	"github.com/nekomeowww/xo/logger"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/nekomeowww/turbobunny/pkg/redis"
	"github.com/nekomeowww/turbobunny/pkg/storage/queue"
)

const (
	// HistoryMaxLength bounds the number of undrained dispatch records kept.
	HistoryMaxLength  = 1000
	historyBufferSize = 64
)

// DispatchRecord describes one query a front-end resolved.
type DispatchRecord struct {
	Platform     Platform  `json:"platform"`
	Client       string    `json:"client"`
	Query        string    `json:"query"`
	URL          string    `json:"url,omitempty"`
	Found        bool      `json:"found"`
	DispatchedAt time.Time `json:"dispatched_at"`
}

// History hands dispatch records off the request path and appends them to a
// queue, from which Drain collects them.
type History struct {
	logger *logger.Logger
	queue  queue.Queue

	mutex   sync.RWMutex
	stopped bool
	records chan DispatchRecord
	puller  *channelx.Puller[DispatchRecord]
}

func NewHistory(q queue.Queue, logger *logger.Logger) *History {
	h := &History{
		logger:  logger,
		queue:   q,
		records: make(chan DispatchRecord, historyBufferSize),
	}

	h.puller = channelx.NewPuller[DispatchRecord]().
		WithNotifyChannel(h.records).
		WithHandler(h.persist).
		WithPanicHandler(func(panicValues *panics.Recovered) {
			h.logger.Error("panic occurred while persisting dispatch history", zap.Any("panic", panicValues))
		})

	return h
}

func (h *History) Start(ctx context.Context) {
	h.puller.StartPull(ctx)
}

// Record queues r for persisting. Records are dropped when the buffer is full
// or the history was stopped.
func (h *History) Record(r DispatchRecord) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.stopped {
		return
	}
	if r.DispatchedAt.IsZero() {
		r.DispatchedAt = time.Now()
	}

	select {
	case h.records <- r:
	default:
		h.logger.Warn("dispatch history buffer is full, dropping record", zap.String("query", r.Query))
	}
}

func (h *History) persist(r DispatchRecord) {
	data, err := json.Marshal(r)
	if err != nil {
		h.logger.Error("failed to marshal dispatch record", zap.Error(err))
		return
	}

	err = h.queue.Push(context.Background(), redis.DispatchHistory0.Format(), string(data))
	if err != nil {
		h.logger.Error("failed to push dispatch record", zap.Error(err), zap.String("query", r.Query))
		return
	}

	h.logger.Debug("recorded dispatch",
		zap.String("platform", string(r.Platform)),
		zap.String("client", r.Client),
		zap.String("query", r.Query),
		zap.String("url", r.URL),
		zap.Bool("found", r.Found),
	)
}

// Drain removes and returns every persisted record, oldest first.
func (h *History) Drain(ctx context.Context) ([]DispatchRecord, error) {
	elems, err := h.queue.PopAll(ctx, redis.DispatchHistory0.Format())
	if err != nil {
		return nil, err
	}

	records := make([]DispatchRecord, 0, len(elems))

	for _, v := range elems {
		var r DispatchRecord

		err := json.Unmarshal([]byte(v), &r)
		if err != nil {
			h.logger.Warn("skipped malformed dispatch record", zap.String("record", v), zap.Error(err))
			continue
		}

		records = append(records, r)
	}

	return records, nil
}

// Stopped reports whether Stop was called.
func (h *History) Stopped() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.stopped
}

func (h *History) Stop(ctx context.Context) error {
	h.mutex.Lock()
	if h.stopped {
		h.mutex.Unlock()
		return nil
	}

	h.stopped = true
	close(h.records)
	h.mutex.Unlock()

	return h.puller.StopPull(ctx)
}
