package turbobunny

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func (s *Server) metadata(c *Context) pageMetadata {
	return pageMetadata{
		AppName:    AppName,
		AppVersion: AppVersion,
		AppAuthors: AppAuthors,
		Route:      c.Request.URL.Path,
		ServerFQDN: s.table.FQDN(),
	}
}

// notFound answers GET requests for unknown routes and commands with 404 and
// everything else with 405.
func (s *Server) notFound(c *Context) error {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return s.methodNotAllowed(c)
	}

	s.logger.Info("404 not found", zap.String("path", c.Request.URL.Path))
	c.HTML(http.StatusNotFound, c.T("http.errors.route_not_found", map[string]any{"Route": c.Request.URL.Path}))

	return nil
}

func (s *Server) methodNotAllowed(c *Context) error {
	c.HTML(http.StatusMethodNotAllowed, c.T("http.errors.method_not_allowed"))
	return nil
}

func (s *Server) cmdNotFound(c *Context) error {
	s.logger.Info("404 no matching command", zap.String("path", c.Request.URL.Path), zap.String("query", c.Query().OrEmpty()))
	c.HTML(http.StatusNotFound, c.T("http.errors.no_matching_command"))

	return nil
}

func (s *Server) index(c *Context) error {
	body, err := s.renderer.renderPage("about.html", nil, s.metadata(c))
	if err != nil {
		return err
	}

	c.HTML(http.StatusOK, body)

	return nil
}

func (s *Server) list(c *Context) error {
	data := struct {
		Commands []Command
		Fallback *Command
	}{
		Commands: s.table.Commands(),
		Fallback: s.table.Fallback().ToPointer(),
	}

	body, err := s.renderer.renderPage("list.html", data, s.metadata(c))
	if err != nil {
		return err
	}

	c.HTML(http.StatusOK, body)

	return nil
}

// cmd redirects to wherever the q parameter dispatches to.
func (s *Server) cmd(c *Context) error {
	query, ok := c.Query().Get()
	if !ok {
		return s.notFound(c)
	}

	if s.limiter.Enabled() {
		count, allowed, err := s.limiter.RateLimitForDispatch(c.Request.Context(), PlatformHTTP, c.ClientIdentity())
		if err != nil {
			s.logger.Error("failed to count rate limit, letting the request through", zap.Error(err))
		} else if !allowed {
			s.logger.Warn("rate limited",
				zap.String("client", c.ClientIdentity()),
				zap.Int64("count", count),
			)

			c.HTML(http.StatusTooManyRequests, c.T("http.errors.rate_limited", map[string]any{
				"Seconds": int64(s.limiter.Period().Seconds()),
			}))

			return nil
		}
	}

	url, found := s.table.Dispatch(query).Get()

	s.logger.Debug(fmt.Sprintf("[命令｜%s] %s => %s",
		PlatformHTTP,
		color.FgYellow.Render(query),
		lo.Ternary(found, color.FgGreen.Render(url), color.FgRed.Render("<not found>")),
	))
	s.history.Record(DispatchRecord{
		Platform: PlatformHTTP,
		Client:   c.ClientIdentity(),
		Query:    query,
		URL:      url,
		Found:    found,
	})

	if !found {
		return s.notFound(c)
	}

	c.Redirect(url)

	return nil
}

// checkCmd shows which command a query would run. The fallback is not
// consulted.
func (s *Server) checkCmd(c *Context) error {
	query, ok := c.Query().Get()
	if !ok {
		return s.cmdNotFound(c)
	}

	m, ok := s.table.Match(query).Get()
	if !ok {
		return s.cmdNotFound(c)
	}

	body, err := s.renderer.renderPage("check.html", m.Command, s.metadata(c))
	if err != nil {
		return err
	}

	c.HTML(http.StatusOK, body)

	return nil
}

// suggest answers with OpenSearch suggestions:
// [query, [matchers], [descriptions], [urls]].
func (s *Server) suggest(c *Context) error {
	query, ok := c.Query().Get()
	if !ok {
		s.logger.Error("suggest failed: missing query string (urlparam `q`)")
		return c.JSON(http.StatusOK, []any{})
	}

	completions := s.table.Completions(query)

	return c.JSON(http.StatusOK, []any{
		query,
		lo.Map(completions, func(item Completion, _ int) string {
			return item.Matcher
		}),
		lo.Map(completions, func(item Completion, _ int) string {
			return item.Command.Description
		}),
		lo.Map(completions, func(item Completion, _ int) string {
			return s.table.CommandURL(item.Matcher)
		}),
	})
}

func (s *Server) searchXML(c *Context) error {
	body, err := s.renderer.renderRaw("search.xml", s.metadata(c))
	if err != nil {
		return err
	}

	c.XML(http.StatusOK, body)

	return nil
}

func (s *Server) dispatchHistory(c *Context) error {
	records, err := s.history.Drain(c.Request.Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, records)
}

func (s *Server) favicon(w http.ResponseWriter, r *http.Request) {
	if s.table.ResourcesPath() == "" {
		s.handle(s.notFound)(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(s.table.ResourcesPath(), "favicon.ico"))
}
