package restserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/carbonchart/internal/chart"
	"github.com/chrissnell/carbonchart/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller serves one chart over HTTP
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	cfg        config.ServerData
	Server     http.Server
	listenAddr string
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller for the given chart
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg config.ServerData, spec *chart.Spec, logger *zap.SugaredLogger) (*Controller, error) {
	if spec == nil {
		return nil, errors.New("no chart to serve")
	}

	if cfg.ListenAddr == "" {
		logger.Infof("server.listen_addr not provided; defaulting to %s", config.DefaultListenAddr)
		cfg.ListenAddr = config.DefaultListenAddr
	}

	ctrl := &Controller{
		ctx:    ctx,
		wg:     wg,
		cfg:    cfg,
		logger: logger,
	}
	ctrl.handlers = NewHandlers(spec, logger)

	ctrl.Server.Addr = cfg.Addr()
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController binds the listener and serves in the background until the
// controller's context is cancelled
func (c *Controller) StartController() error {
	ln, err := net.Listen("tcp", c.Server.Addr)
	if err != nil {
		return fmt.Errorf("REST server could not listen on %s: %w", c.Server.Addr, err)
	}
	c.listenAddr = ln.Addr().String()
	c.logger.Infof("Starting REST server on %s...", c.listenAddr)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// URL returns the chart page address once the controller has started
func (c *Controller) URL() string {
	return "http://" + c.listenAddr + "/"
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger(c.logger))

	router.HandleFunc("/", c.handlers.ServeChart).Methods(http.MethodGet)
	router.HandleFunc("/api/chart", c.handlers.GetChart).Methods(http.MethodGet)
	router.HandleFunc("/chart.png", c.handlers.ServePNG).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(c.handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(c.handlers.MethodNotAllowed)

	return router
}
