package turbobunny

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gookit/color"
	"github.com/nekomeowww/fo"
	"github.com/nekomeowww/xo/logger"
	"go.uber.org/zap"

	"github.com/nekomeowww/turbobunny/pkg/i18n"
)

type Server struct {
	opts     *options
	logger   *logger.Logger
	i18n     *i18n.I18n
	table    *CommandTable
	renderer *renderer
	limiter  *RateLimiter
	history  *History

	ownsHistory    bool
	httpServer     *http.Server
	alreadyStopped bool
}

func NewServer(table *CommandTable, callOpts ...CallOption) (*Server, error) {
	if table == nil {
		return nil, errors.New("must supply a command table")
	}

	opts, err := newOptions(callOpts)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:     opts,
		logger:   opts.logger,
		i18n:     opts.i18n,
		table:    table,
		renderer: newRenderer(table.ResourcesPath()),
		limiter:  NewRateLimiter(opts.ttlcache, opts.rateLimit, opts.rateLimitPeriod),
		history:  opts.history,
	}
	if s.history == nil {
		s.history = NewHistory(opts.queue, opts.logger)
		s.ownsHistory = true
	}

	s.httpServer = &http.Server{
		Addr:              opts.listenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler builds the router serving every route of the service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	for _, path := range []string{"/", "/index", "/index.htm", "/index.html"} {
		r.Get(path, s.handle(s.index))
	}

	r.Get("/list", s.handle(s.list))
	r.Get("/cmd", s.handle(s.cmd))
	r.Get("/check", s.handle(s.checkCmd))
	r.Get("/suggest", s.handle(s.suggest))
	r.Get("/search.xml", s.handle(s.searchXML))
	r.Get("/history", s.handle(s.dispatchHistory))
	r.Get("/favicon.ico", s.favicon)
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(s.renderer.staticFS()))))

	r.NotFound(s.handle(s.notFound))
	r.MethodNotAllowed(s.handle(s.methodNotAllowed))

	return r
}

func (s *Server) handle(f HandleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := NewContext(s.table, w, r, s.logger, s.i18n)

		err := f(c)
		if err != nil {
			s.logger.Error("failed to handle request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)

			c.HTML(http.StatusInternalServerError, c.T("http.errors.internal"))
		}
	}
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		startedAt := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug(fmt.Sprintf("[HTTP] %s %s %s",
			r.Method,
			color.FgGreen.Render(r.URL.RequestURI()),
			color.FgYellow.Render(ww.Status()),
		),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(startedAt)),
		)
	})
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Start(ctx context.Context) error {
	return fo.Invoke0(ctx, func() error {
		l, err := net.Listen("tcp", s.httpServer.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
		}

		s.httpServer.Addr = l.Addr().String()

		if s.ownsHistory {
			s.history.Start(context.Background())
		}

		go func() {
			err := s.httpServer.Serve(l)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Fatal("", zap.Error(err))
			}
		}()

		s.logger.Info("turbobunny is listening",
			zap.String("addr", s.httpServer.Addr),
			zap.String("fqdn", s.table.FQDN()),
		)

		return nil
	})
}

func (s *Server) Stop(ctx context.Context) error {
	if s.alreadyStopped {
		return nil
	}

	s.alreadyStopped = true

	closeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(closeCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}

	if s.ownsHistory {
		return s.history.Stop(ctx)
	}

	return nil
}
