package restserver

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/chrissnell/carbonchart/internal/chart"
	"github.com/chrissnell/carbonchart/pkg/responseformat"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

const (
	maxPNGInches = 40
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	spec      *chart.Spec
	formatter *responseformat.Formatter
	logger    *zap.SugaredLogger
}

// NewHandlers creates a new handlers instance
func NewHandlers(spec *chart.Spec, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{
		spec:      spec,
		formatter: responseformat.NewFormatter(),
		logger:    logger,
	}
}

// ServeChart serves the interactive chart page
func (h *Handlers) ServeChart(w http.ResponseWriter, req *http.Request) {
	var buf bytes.Buffer
	if err := chart.WriteHTML(&buf, h.spec); err != nil {
		h.logger.Errorf("error rendering chart page: %v", err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "unable to render chart")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// GetChart returns the chart description as JSON or MessagePack
func (h *Handlers) GetChart(w http.ResponseWriter, req *http.Request) {
	if err := h.formatter.WriteResponse(w, req, h.spec); err != nil {
		h.logger.Errorf("error encoding chart: %v", err)
	}
}

// ServePNG serves the static chart. Optional w and h query parameters set the
// image size in inches.
func (h *Handlers) ServePNG(w http.ResponseWriter, req *http.Request) {
	width, err := inches(req, "w", chart.DefaultPNGWidth)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}
	height, err := inches(req, "h", chart.DefaultPNGHeight)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := chart.WritePNG(&buf, h.spec, width, height); err != nil {
		h.logger.Errorf("error rendering chart image: %v", err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "unable to render chart image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (h *Handlers) NotFound(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteError(w, req, http.StatusNotFound, "not found")
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteError(w, req, http.StatusMethodNotAllowed, "method not allowed")
}

type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " parameter: " + strconv.Quote(e.value)
}

func inches(req *http.Request, name string, def vg.Length) (vg.Length, error) {
	v := req.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 || n > maxPNGInches {
		return 0, &paramError{name: name, value: v}
	}
	return vg.Length(n) * vg.Inch, nil
}
