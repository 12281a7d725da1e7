package restserver

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/chrissnell/carbonchart/internal/chart"
	"github.com/chrissnell/carbonchart/pkg/config"
	"go.uber.org/zap"
)

// BrowserRenderer serves the chart over HTTP and opens it in the system
// browser. Render blocks until ctx is cancelled and the server has stopped.
type BrowserRenderer struct {
	cfg    config.ServerData
	logger *zap.SugaredLogger
	// Open launches a browser at url.
	Open func(url string) error
	// Ready, if set, receives the chart URL once the server is listening.
	Ready func(url string)
}

func NewBrowserRenderer(cfg config.ServerData, logger *zap.SugaredLogger) *BrowserRenderer {
	return &BrowserRenderer{
		cfg:    cfg,
		logger: logger,
		Open:   OpenBrowser,
	}
}

func (r *BrowserRenderer) Render(ctx context.Context, spec *chart.Spec) error {
	var wg sync.WaitGroup

	ctrl, err := NewController(ctx, &wg, r.cfg, spec, r.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	url := ctrl.URL()
	r.logger.Infof("chart available at %s", url)
	if r.Ready != nil {
		r.Ready(url)
	}

	if r.cfg.ShouldOpenBrowser() && r.Open != nil {
		if err := r.Open(url); err != nil {
			// The chart is still reachable at url.
			r.logger.Warnf("could not open a browser: %v", err)
		}
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("don't know how to open a browser on %s", runtime.GOOS)
	}
	return cmd.Start()
}
