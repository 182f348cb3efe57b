package turbobunny

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nekomeowww/fo"
	"github.com/nekomeowww/xo"
	"github.com/nekomeowww/xo/exp/channelx"
	"github.com/nekomeowww/xo/logger"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/nekomeowww/turbobunny/pkg/i18n"
)

// TelegramBot answers /go commands and inline queries from Telegram with
// the URLs the command table resolves to.
type TelegramBot struct {
	*tgbotapi.BotAPI

	opts       *options
	logger     *logger.Logger
	i18n       *i18n.I18n
	dispatcher *TelegramDispatcher
	limiter    *RateLimiter
	history    *History

	ownsHistory    bool
	updateChan     tgbotapi.UpdatesChannel
	alreadyStopped bool

	puller *channelx.Puller[tgbotapi.Update]
}

func NewTelegramBot(table *CommandTable, callOpts ...CallOption) (*TelegramBot, error) {
	if table == nil {
		return nil, errors.New("must supply a command table")
	}

	opts, err := newOptions(callOpts)
	if err != nil {
		return nil, err
	}
	if opts.token == "" {
		return nil, errors.New("must supply a valid telegram bot token in configs or environment variable")
	}

	var b *tgbotapi.BotAPI

	if opts.apiEndpoint != "" {
		b, err = tgbotapi.NewBotAPIWithAPIEndpoint(opts.token, opts.apiEndpoint+"/bot%s/%s")
	} else {
		b, err = tgbotapi.NewBotAPI(opts.token)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}

	bot := &TelegramBot{
		BotAPI:  b,
		opts:    opts,
		logger:  opts.logger,
		i18n:    opts.i18n,
		limiter: NewRateLimiter(opts.ttlcache, opts.rateLimit, opts.rateLimitPeriod),
		history: opts.history,
	}
	if bot.history == nil {
		bot.history = NewHistory(opts.queue, opts.logger)
		bot.ownsHistory = true
	}

	bot.dispatcher = NewTelegramDispatcher(table, bot.logger, bot.i18n, bot.limiter, bot.history)

	bot.puller = channelx.NewPuller[tgbotapi.Update]().
		WithHandler(func(update tgbotapi.Update) {
			bot.dispatcher.Dispatch(bot, update)
		}).
		WithPanicHandler(func(panicValues *panics.Recovered) {
			bot.logger.Error("panic occurred", zap.Any("panic", panicValues))
		})

	// updates are pulled, so a previously set webhook must go
	webhookInfo, err := bot.GetWebhookInfo()
	if err != nil {
		return nil, err
	}
	if webhookInfo.IsSet() {
		_, err := bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
		if err != nil {
			return nil, err
		}
	}

	return bot, nil
}

func (b *TelegramBot) Start(ctx context.Context) error {
	return fo.Invoke0(ctx, func() error {
		b.MayRequest(tgbotapi.NewSetMyCommands(b.dispatcher.BotCommands()...))

		if b.ownsHistory {
			b.history.Start(context.Background())
		}

		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		b.updateChan = b.GetUpdatesChan(u)
		b.puller = b.puller.WithNotifyChannel(b.updateChan)
		b.puller.StartPull(context.Background())

		b.logger.Info("Telegram Bot is pulling updates", zap.String("username", b.Self.UserName))

		return nil
	})
}

func (b *TelegramBot) Stop(ctx context.Context) error {
	if b.alreadyStopped {
		return nil
	}

	b.alreadyStopped = true

	b.StopReceivingUpdates()
	_ = b.puller.StopPull(ctx)

	if b.ownsHistory {
		return b.history.Stop(ctx)
	}

	return nil
}

func (b *TelegramBot) MaySend(chattable tgbotapi.Chattable) *tgbotapi.Message {
	may := fo.NewMay[tgbotapi.Message]().Use(func(err error, messageArgs ...any) {
		b.logger.Error("failed to send message to telegram", zap.String("message", xo.SprintJSON(chattable)), zap.Error(err))
	})

	return lo.ToPtr(may.Invoke(b.Send(chattable)))
}

func (b *TelegramBot) MayRequest(chattable tgbotapi.Chattable) *tgbotapi.APIResponse {
	may := fo.NewMay[*tgbotapi.APIResponse]().Use(func(err error, messageArgs ...any) {
		b.logger.Error("failed to send request to telegram", zap.String("request", xo.SprintJSON(chattable)), zap.Error(err))
	})

	return may.Invoke(b.Request(chattable))
}
