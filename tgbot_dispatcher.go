package turbobunny

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gookit/color"
	"github.com/nekomeowww/xo/logger"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/nekomeowww/turbobunny/pkg/i18n"
)

// Telegram rejects answers carrying more than 50 inline results.
const maxInlineResults = 50

type telegramSender interface {
	MaySend(tgbotapi.Chattable) *tgbotapi.Message
	MayRequest(tgbotapi.Chattable) *tgbotapi.APIResponse
	UserName() string
}

func (b *TelegramBot) UserName() string {
	return b.Self.UserName
}

// TelegramContext carries one Telegram update through a command handler.
type TelegramContext struct {
	Bot    telegramSender
	Update tgbotapi.Update
	Logger *logger.Logger
	I18n   *i18n.I18n
}

func (c *TelegramContext) T(key string, args ...any) string {
	return c.I18n.TWithLanguage(c.Language(), key, args...)
}

func (c *TelegramContext) Language() string {
	if c.Update.SentFrom() == nil {
		c.Logger.Warn("update.SentFrom() is nil, fallback to 'en' language.")
		return "en"
	}

	languageCode := c.Update.SentFrom().LanguageCode
	if languageCode == "" {
		c.Logger.Warn("update.SentFrom().LanguageCode is empty, fallback to 'en' language.")
		return "en"
	}

	return languageCode
}

func (c *TelegramContext) Reply(text string) *tgbotapi.Message {
	msg := tgbotapi.NewMessage(c.Update.FromChat().ID, text)
	msg.ReplyToMessageID = c.Update.Message.MessageID

	return c.Bot.MaySend(msg)
}

type TelegramCommand struct {
	Command     string
	HelpMessage func(*TelegramContext) string
	Handler     func(*TelegramContext)
}

type TelegramDispatcher struct {
	logger  *logger.Logger
	i18n    *i18n.I18n
	table   *CommandTable
	limiter *RateLimiter
	history *History

	commands        []TelegramCommand
	commandHandlers map[string]func(*TelegramContext)
}

func NewTelegramDispatcher(table *CommandTable, logger *logger.Logger, i18n *i18n.I18n, limiter *RateLimiter, history *History) *TelegramDispatcher {
	d := &TelegramDispatcher{
		logger:          logger,
		i18n:            i18n,
		table:           table,
		limiter:         limiter,
		history:         history,
		commands:        make([]TelegramCommand, 0),
		commandHandlers: make(map[string]func(*TelegramContext)),
	}

	d.OnCommand("go", func(c *TelegramContext) string { return c.T("telegram.commands.go.help") }, d.handleGo)
	d.OnCommand("b", func(c *TelegramContext) string { return c.T("telegram.commands.go.help") }, d.handleGo)
	d.OnCommand("help", func(c *TelegramContext) string { return c.T("telegram.commands.help.help") }, d.handleHelp)
	d.OnCommand("start", func(c *TelegramContext) string { return c.T("telegram.commands.start.help") }, d.handleStart)

	return d
}

func (d *TelegramDispatcher) OnCommand(cmd string, commandHelp func(*TelegramContext) string, h func(*TelegramContext)) {
	d.commands = append(d.commands, TelegramCommand{
		Command:     cmd,
		HelpMessage: commandHelp,
		Handler:     h,
	})

	d.commandHandlers[cmd] = h
}

// BotCommands lists the registered commands for the Telegram command menu.
func (d *TelegramDispatcher) BotCommands() []tgbotapi.BotCommand {
	c := &TelegramContext{Logger: d.logger, I18n: d.i18n}

	return lo.Map(d.commands, func(item TelegramCommand, _ int) tgbotapi.BotCommand {
		return tgbotapi.BotCommand{
			Command:     item.Command,
			Description: lo.TernaryF(item.HelpMessage == nil, func() string { return item.Command }, func() string { return item.HelpMessage(c) }),
		}
	})
}

func (d *TelegramDispatcher) Dispatch(bot telegramSender, update tgbotapi.Update) {
	c := &TelegramContext{
		Bot:    bot,
		Update: update,
		Logger: d.logger,
		I18n:   d.i18n,
	}

	switch {
	case update.Message != nil:
		d.dispatchMessage(c)
	case update.InlineQuery != nil:
		d.dispatchInlineQuery(c)
	default:
		d.logger.Debug("unable to dispatch update due to unsupported update type", zap.Int("update_id", update.UpdateID))
	}
}

func (d *TelegramDispatcher) dispatchMessage(c *TelegramContext) {
	message := c.Update.Message
	if message.Chat == nil {
		return
	}

	identityStrings := make([]string, 0)
	if message.From != nil {
		identityStrings = append(identityStrings, FullNameFromFirstAndLastName(message.From.FirstName, message.From.LastName))
		if message.From.UserName != "" {
			identityStrings = append(identityStrings, "@"+message.From.UserName)
		}
	}

	d.logger.Debug(fmt.Sprintf("[消息｜%s] [%s (%s)] %s: %s",
		message.Chat.Type,
		color.FgGreen.Render(message.Chat.Title),
		color.FgYellow.Render(message.Chat.ID),
		strings.Join(identityStrings, " "),
		lo.Ternary(message.Text == "", "<empty or contains medias>", message.Text),
	))

	if !message.IsCommand() {
		return
	}

	handler, ok := d.commandHandlers[message.Command()]
	if !ok {
		return
	}

	handler(c)
}

func (d *TelegramDispatcher) handleStart(c *TelegramContext) {
	c.Reply(c.T("telegram.commands.start.message", map[string]any{"BotName": c.Bot.UserName()}))
}

func (d *TelegramDispatcher) handleHelp(c *TelegramContext) {
	c.Reply(c.T("telegram.commands.help.message", map[string]any{"Commands": d.commandListText()}))
}

func (d *TelegramDispatcher) commandListText() string {
	lines := lo.Map(d.table.Commands(), func(item Command, _ int) string {
		return fmt.Sprintf("• %s: %s (%s)", strings.Join(item.Matchers, ", "), item.Description, item.Example)
	})

	return strings.Join(lines, "\n")
}

func (d *TelegramDispatcher) handleGo(c *TelegramContext) {
	query := strings.TrimLeft(c.Update.Message.CommandArguments(), " ")
	if query == "" {
		example := "g red rex rabbits"
		if len(d.table.commands) > 0 {
			example = d.table.commands[0].Example
		}

		c.Reply(c.T("telegram.commands.go.usage", map[string]any{"Example": example}))

		return
	}

	chatID := strconv.FormatInt(c.Update.FromChat().ID, 10)

	if d.limiter.Enabled() {
		_, allowed, err := d.limiter.RateLimitForDispatch(context.Background(), PlatformTelegram, chatID)
		if err != nil {
			d.logger.Error("failed to count rate limit, letting the command through", zap.Error(err))
		} else if !allowed {
			c.Reply(c.T("http.errors.rate_limited", map[string]any{"Seconds": int64(d.limiter.Period().Seconds())}))
			return
		}
	}

	url, found := d.table.Dispatch(query).Get()

	d.history.Record(DispatchRecord{
		Platform: PlatformTelegram,
		Client:   chatID,
		Query:    query,
		URL:      url,
		Found:    found,
	})

	if !found {
		c.Reply(c.T("telegram.commands.go.no_matching_command", map[string]any{"Query": query}))
		return
	}

	c.Reply(url)
}

func (d *TelegramDispatcher) dispatchInlineQuery(c *TelegramContext) {
	query := c.Update.InlineQuery.Query

	if from := c.Update.InlineQuery.From; from != nil {
		d.logger.Debug(fmt.Sprintf("[内联查询] %s (%s): %s",
			FullNameFromFirstAndLastName(from.FirstName, from.LastName),
			color.FgYellow.Render(from.ID),
			query,
		))
	}

	c.Bot.MayRequest(tgbotapi.InlineConfig{
		InlineQueryID: c.Update.InlineQuery.ID,
		Results:       d.inlineResults(c, query),
		CacheTime:     0,
	})
}

// inlineResults lists the URL the full query dispatches to, followed by the
// matchers completing the query while no argument has been typed yet.
func (d *TelegramDispatcher) inlineResults(c *TelegramContext, query string) []interface{} {
	results := make([]interface{}, 0)

	if query != "" {
		if url, ok := d.table.Dispatch(query).Get(); ok {
			article := tgbotapi.NewInlineQueryResultArticle("dispatch", c.T("telegram.inline.dispatch.title", map[string]any{"URL": url}), url)
			article.Description = query
			results = append(results, article)
		}
	}
	if strings.Contains(query, " ") {
		return results
	}

	for i, completion := range d.table.Completions(query) {
		if len(results) >= maxInlineResults {
			break
		}

		article := tgbotapi.NewInlineQueryResultArticle(fmt.Sprintf("completion-%d", i), completion.Matcher, completion.Command.Resolve(""))
		article.Description = completion.Command.Description
		results = append(results, article)
	}

	return results
}
