package inspector

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/grafana/dskit/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zachfi/mp3walk/pkg/mpeg"
	"github.com/zachfi/mp3walk/pkg/spans"
)

// Inspector serves JSON analysis reports for files below a directory.
type Inspector struct {
	services.Service
	cfg    *Config
	logger *slog.Logger
}

var module = "inspector"

var (
	errMissingFile = errors.New("missing file parameter")
	errNotRegular  = errors.New("not a regular file")
)

// New creates an Inspector. The caller mounts it on an HTTP router at
// cfg.PathPrefix.
func New(cfg Config, logger slog.Logger) (*Inspector, error) {
	if cfg.Dir == "" {
		return nil, errors.New("inspector directory is required")
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = defaultPathPrefix
	}

	i := &Inspector{
		cfg:    &cfg,
		logger: logger.With("module", module),
	}

	i.Service = services.NewIdleService(nil, nil)

	return i, nil
}

func (i *Inspector) PathPrefix() string { return i.cfg.PathPrefix }

// ServeHTTP handles GET ?file=<name>[&frames=true]. name is resolved inside
// the configured directory.
func (i *Inspector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		i.writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		metricRequests.WithLabelValues(strconv.Itoa(http.StatusMethodNotAllowed)).Inc()
		return
	}

	name := r.URL.Query().Get("file")
	withFrames, _ := strconv.ParseBool(r.URL.Query().Get("frames"))

	_, span := otel.Tracer(module).Start(r.Context(), "inspect")
	span.SetAttributes(attribute.String("file", name))

	rep, err := i.inspect(name, withFrames)
	_ = spans.End(span, err, "inspect failed", nil)

	code := http.StatusOK
	if err != nil {
		code = statusFor(err)
		i.logger.Debug("inspect failed", "file", name, "status", code, "err", err)
		msg := err.Error()
		if code == http.StatusNotFound || code == http.StatusInternalServerError {
			// Filesystem errors carry the resolved path.
			msg = http.StatusText(code)
		}
		i.writeError(w, code, msg)
	} else {
		i.writeJSON(w, code, rep)
	}
	metricRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (i *Inspector) inspect(name string, withFrames bool) (Report, error) {
	if name == "" {
		return Report{}, errMissingFile
	}

	path := i.resolve(name)
	info, err := os.Stat(path)
	if err != nil {
		return Report{}, err
	}
	if !info.Mode().IsRegular() {
		return Report{}, errNotRegular
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()

	s, err := mpeg.Open(f)
	if err != nil {
		return Report{}, err
	}
	layout, err := s.Locate()
	if err != nil {
		return Report{}, err
	}

	var frames []Frame
	var fn mpeg.FrameFunc
	if withFrames {
		fn = func(fr mpeg.Frame) { frames = append(frames, newFrame(fr)) }
	}

	sum, err := mpeg.WalkToEnd(f, layout.Region, fn)
	if err != nil {
		return Report{}, err
	}

	rep := newReport(name, s, layout, sum)
	rep.FrameList = frames
	return rep, nil
}

// resolve maps name below Dir. Cleaning the rooted name first keeps ".."
// elements from escaping the directory.
func (i *Inspector) resolve(name string) string {
	return filepath.Join(i.cfg.Dir, filepath.Clean("/"+name))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errMissingFile):
		return http.StatusBadRequest
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, errNotRegular):
		return http.StatusNotFound
	case errors.Is(err, mpeg.ErrIO):
		return http.StatusInternalServerError
	case errors.Is(err, mpeg.ErrUnrecognizedFormat),
		errors.Is(err, mpeg.ErrNotATag),
		errors.Is(err, mpeg.ErrInvalidSync),
		errors.Is(err, mpeg.ErrInvalidTable),
		errors.Is(err, mpeg.ErrTruncated):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (i *Inspector) writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		i.logger.Error("failed to encode response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(b); err != nil {
		i.logger.Debug("failed to write response", "err", err)
	}
}

func (i *Inspector) writeError(w http.ResponseWriter, code int, msg string) {
	i.writeJSON(w, code, errorResponse{Error: msg})
}
