package turbobunny

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/nekomeowww/xo/logger"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/nekomeowww/turbobunny/pkg/i18n"
)

// Context carries one HTTP request through a handler.
type Context struct {
	Table    *CommandTable
	Request  *http.Request
	Response http.ResponseWriter
	Logger   *logger.Logger
	I18n     *i18n.I18n
}

func NewContext(table *CommandTable, w http.ResponseWriter, r *http.Request, logger *logger.Logger, i18n *i18n.I18n) *Context {
	return &Context{
		Table:    table,
		Request:  r,
		Response: w,
		Logger:   logger,
		I18n:     i18n,
	}
}

// Query returns the q URL parameter. An empty but present parameter is Some("").
func (c *Context) Query() mo.Option[string] {
	values, ok := c.Request.URL.Query()["q"]
	if !ok || len(values) == 0 {
		return mo.None[string]()
	}

	return mo.Some(values[0])
}

func (c *Context) T(key string, args ...any) string {
	return c.I18n.TWithLanguage(c.Language(), key, args...)
}

// Language resolves the preferred language from the Accept-Language header.
func (c *Context) Language() string {
	header := c.Request.Header.Get("Accept-Language")
	if header == "" {
		return "en"
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		c.Logger.Debug("unable to parse Accept-Language, fallback to 'en' language.", zap.String("header", header))
		return "en"
	}

	return tags[0].String()
}

// ClientIdentity identifies the requesting client for rate limiting and
// history. It relies on RemoteAddr having been rewritten from proxy headers.
func (c *Context) ClientIdentity() string {
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(c.Request.RemoteAddr)
	}

	return host
}

func (c *Context) Redirect(url string) {
	c.Response.Header().Set("Location", url)
	c.Response.WriteHeader(http.StatusFound)
}

func (c *Context) HTML(status int, body string) {
	c.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response.WriteHeader(status)
	_, _ = c.Response.Write([]byte(body))
}

func (c *Context) XML(status int, body string) {
	c.Response.Header().Set("Content-Type", "application/xml; charset=utf-8")
	c.Response.WriteHeader(status)
	_, _ = c.Response.Write([]byte(body))
}

func (c *Context) JSON(status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.Response.Header().Set("Content-Type", "application/json")
	c.Response.WriteHeader(status)
	_, _ = c.Response.Write(data)

	return nil
}

type HandleFunc func(*Context) error
