package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekomeowww/xo/logger"
	"github.com/redis/rueidis"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nekomeowww/turbobunny"
	"github.com/nekomeowww/turbobunny/pkg/i18n"
	"github.com/nekomeowww/turbobunny/pkg/storage/queue"
)

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "turbobunny [fqdn]",
		Short:   "turbobunny - a smart bookmarking and shortcut server",
		Version: turbobunny.AppVersion,
		Long: `turbobunny redirects short commands such as "g red rex rabbits" or "pr 192"
to the pages they stand for. Point your browser's search engine at
https://<fqdn>/cmd?q=%s, or talk to the Telegram bot.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, args)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cobra.CheckErr(bindFlags(cmd, v))

	return cmd
}

func run(ctx context.Context, cfg config) error {
	logger, err := logger.NewLogger(
		logger.WithLevel(cfg.LogLevel),
		logger.WithAppName(turbobunny.AppName),
		logger.WithNamespace("nekomeowww"),
	)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	i18n, err := i18n.NewI18n(i18n.WithLocalesDir(cfg.LocalesDir))
	if err != nil {
		return err
	}

	callOpts := []turbobunny.CallOption{
		turbobunny.WithLogger(logger),
		turbobunny.WithI18n(i18n),
		turbobunny.WithListenAddr(cfg.ListenAddr()),
		turbobunny.WithRateLimit(cfg.RateLimit, cfg.RateLimitPeriod),
		turbobunny.WithToken(cfg.TelegramToken),
		turbobunny.WithAPIEndpoint(cfg.TelegramAPIEndpoint),
	}

	historyQueue := queue.Queue(queue.NewInMemoryQueue(queue.WithMaxLength(turbobunny.HistoryMaxLength)))

	if cfg.RedisAddr != "" {
		client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{cfg.RedisAddr}})
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		defer client.Close()

		historyQueue = queue.NewRueidisQueue(client, queue.WithMaxLength(turbobunny.HistoryMaxLength))
		callOpts = append(callOpts, turbobunny.WithRueidis(client))

		logger.Info("using redis for rate limits and dispatch history", zap.String("addr", cfg.RedisAddr))
	}

	history := turbobunny.NewHistory(historyQueue, logger)
	callOpts = append(callOpts, turbobunny.WithHistory(history))

	table := turbobunny.NewDefaultCommandTable(cfg.FQDN, cfg.Resources)

	server, err := turbobunny.NewServer(table, callOpts...)
	if err != nil {
		return err
	}

	var bot *turbobunny.TelegramBot

	if cfg.TelegramToken != "" {
		bot, err = turbobunny.NewTelegramBot(table, callOpts...)
		if err != nil {
			return err
		}
	}

	err = startServices(ctx, history, server, bot)
	if err != nil {
		return err
	}

	<-ctx.Done()

	logger.Info("stopping turbobunny")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var wg conc.WaitGroup

	wg.Go(func() {
		if err := server.Stop(stopCtx); err != nil {
			logger.Error("failed to stop http server", zap.Error(err))
		}
	})

	if bot != nil {
		wg.Go(func() {
			if err := bot.Stop(stopCtx); err != nil {
				logger.Error("failed to stop telegram bot", zap.Error(err))
			}
		})
	}

	wg.Wait()

	return history.Stop(stopCtx)
}

// startServices starts the history, the server and the bot when there is one.
// On failure everything already started is stopped again.
func startServices(ctx context.Context, history *turbobunny.History, server *turbobunny.Server, bot *turbobunny.TelegramBot) error {
	history.Start(context.Background())

	err := server.Start(ctx)
	if err != nil {
		_ = history.Stop(context.Background())
		return err
	}
	if bot == nil {
		return nil
	}

	err = bot.Start(ctx)
	if err != nil {
		_ = server.Stop(context.Background())
		_ = history.Stop(context.Background())

		return err
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}
