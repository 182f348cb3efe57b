package locales

import (
	i18nv2 "github.com/nicksnyder/go-i18n/v2/i18n"
)

func RegisterEn() []*i18nv2.Message {
	return []*i18nv2.Message{
		{
			ID:    "http.errors.route_not_found",
			Other: "404 for route `{{ .Route }}`",
		},
		{
			ID:    "http.errors.no_matching_command",
			Other: "No matching command",
		},
		{
			ID:    "http.errors.method_not_allowed",
			Other: "Method not allowed",
		},
		{
			ID:    "http.errors.rate_limited",
			Other: "Too many commands in a short time, please slow down and try again in {{ .Seconds }} seconds.",
		},
		{
			ID:    "http.errors.internal",
			Other: "Something went wrong while rendering this page.",
		},
		{
			ID:    "telegram.commands.start.help",
			Other: "Begin interacting with the bot",
		},
		{
			ID:    "telegram.commands.start.message",
			Other: "Hi! Send /go followed by a command, or type @{{ .BotName }} in any chat to search commands inline.",
		},
		{
			ID:    "telegram.commands.help.help",
			Other: "Display the available commands",
		},
		{
			ID:    "telegram.commands.help.message",
			Other: "Here are the available commands:\n\n{{ .Commands }}",
		},
		{
			ID:    "telegram.commands.go.help",
			Other: "Run a command and get the link it points to",
		},
		{
			ID:    "telegram.commands.go.usage",
			Other: "Usage: /go <command> [arguments], for example /go {{ .Example }}",
		},
		{
			ID:    "telegram.commands.go.no_matching_command",
			Other: "No matching command for \"{{ .Query }}\"",
		},
		{
			ID:    "telegram.inline.dispatch.title",
			Other: "Go to {{ .URL }}",
		},
	}
}
