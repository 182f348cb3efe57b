package locales

import (
	i18nv2 "github.com/nicksnyder/go-i18n/v2/i18n"
)

func RegisterZhCN() []*i18nv2.Message {
	return []*i18nv2.Message{
		{
			ID:    "http.errors.route_not_found",
			Other: "路由 `{{ .Route }}` 不存在 (404)",
		},
		{
			ID:    "http.errors.no_matching_command",
			Other: "没有匹配的命令",
		},
		{
			ID:    "http.errors.method_not_allowed",
			Other: "不支持的请求方法",
		},
		{
			ID:    "http.errors.rate_limited",
			Other: "短时间内执行的命令过多，请在 {{ .Seconds }} 秒后再试。",
		},
		{
			ID:    "http.errors.internal",
			Other: "渲染页面时出现了问题。",
		},
		{
			ID:    "telegram.commands.start.help",
			Other: "开始与机器人互动",
		},
		{
			ID:    "telegram.commands.start.message",
			Other: "你好！发送 /go 加上命令即可使用，或者在任意聊天中输入 @{{ .BotName }} 以内联方式搜索命令。",
		},
		{
			ID:    "telegram.commands.help.help",
			Other: "显示可用的命令",
		},
		{
			ID:    "telegram.commands.help.message",
			Other: "以下是可用的命令：\n\n{{ .Commands }}",
		},
		{
			ID:    "telegram.commands.go.help",
			Other: "执行命令并获取其指向的链接",
		},
		{
			ID:    "telegram.commands.go.usage",
			Other: "用法：/go <命令> [参数]，例如 /go {{ .Example }}",
		},
		{
			ID:    "telegram.commands.go.no_matching_command",
			Other: "没有与 \"{{ .Query }}\" 匹配的命令",
		},
		{
			ID:    "telegram.inline.dispatch.title",
			Other: "前往 {{ .URL }}",
		},
	}
}
