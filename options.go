package turbobunny

import (
	"fmt"
	"time"

	"github.com/nekomeowww/xo/logger"
	"github.com/redis/rueidis"
	"go.uber.org/zap/zapcore"

	"github.com/nekomeowww/turbobunny/pkg/i18n"
	"github.com/nekomeowww/turbobunny/pkg/storage/queue"
	"github.com/nekomeowww/turbobunny/pkg/storage/ttlcache"
)

const (
	AppName    = "turbobunny"
	AppVersion = "0.2.0"
	AppAuthors = "Ludum Ipsum"
)

type options struct {
	listenAddr      string
	token           string
	apiEndpoint     string
	logger          *logger.Logger
	queue           queue.Queue
	ttlcache        ttlcache.TTLCache
	i18n            *i18n.I18n
	history         *History
	rateLimit       int64
	rateLimitPeriod time.Duration
}

type CallOption func(*options)

// WithListenAddr sets the address the HTTP server binds to.
func WithListenAddr(addr string) CallOption {
	return func(o *options) {
		o.listenAddr = addr
	}
}

// WithToken sets the Telegram bot token.
func WithToken(token string) CallOption {
	return func(o *options) {
		o.token = token
	}
}

// WithAPIEndpoint sets a self-hosted Telegram Bot API endpoint.
func WithAPIEndpoint(endpoint string) CallOption {
	return func(o *options) {
		o.apiEndpoint = endpoint
	}
}

func WithLogger(logger *logger.Logger) CallOption {
	return func(o *options) {
		o.logger = logger
	}
}

func WithQueue(queue queue.Queue) CallOption {
	return func(o *options) {
		o.queue = queue
	}
}

func WithTTLCache(ttlcache ttlcache.TTLCache) CallOption {
	return func(o *options) {
		o.ttlcache = ttlcache
	}
}

func WithRueidis(rueidis rueidis.Client) CallOption {
	return func(o *options) {
		o.queue = queue.NewRueidisQueue(rueidis, queue.WithMaxLength(HistoryMaxLength))
		o.ttlcache = ttlcache.NewRueidisTTLCache(rueidis)
	}
}

func WithI18n(i18n *i18n.I18n) CallOption {
	return func(o *options) {
		o.i18n = i18n
	}
}

// WithHistory shares one dispatch history between front-ends. The caller
// owns it and is responsible for starting and stopping it.
func WithHistory(history *History) CallOption {
	return func(o *options) {
		o.history = history
	}
}

// WithRateLimit allows at most rate dispatches per client within period.
// A zero rate or period disables rate limiting.
func WithRateLimit(rate int64, period time.Duration) CallOption {
	return func(o *options) {
		o.rateLimit = rate
		o.rateLimitPeriod = period
	}
}

func newOptions(callOpts []CallOption) (*options, error) {
	opts := &options{
		listenAddr: "127.0.0.1:8080",
	}

	for _, callOpt := range callOpts {
		callOpt(opts)
	}

	if opts.queue == nil {
		opts.queue = queue.NewInMemoryQueue(queue.WithMaxLength(HistoryMaxLength))
	}
	if opts.ttlcache == nil {
		opts.ttlcache = ttlcache.NewInMemoryTTLCache()
	}

	var err error

	if opts.logger == nil {
		opts.logger, err = logger.NewLogger(
			logger.WithLevel(zapcore.InfoLevel),
			logger.WithAppName(AppName),
			logger.WithNamespace("nekomeowww"),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}
	if opts.i18n == nil {
		opts.i18n, err = i18n.NewI18n()
		if err != nil {
			return nil, fmt.Errorf("failed to load locales: %w", err)
		}
	}

	return opts, nil
}
