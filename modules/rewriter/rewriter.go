package rewriter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/grafana/dskit/modules"
	"github.com/grafana/dskit/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zachfi/mp3walk/pkg/mpeg"
	"github.com/zachfi/mp3walk/pkg/spans"
)

type Rewriter struct {
	services.Service
	cfg    *Config
	logger *slog.Logger
}

var module = "rewriter"

var errSamePath = errors.New("input and output are the same file")

// New creates a Rewriter which converts a single file and then asks the
// process to stop.
func New(cfg Config, logger slog.Logger) (*Rewriter, error) {
	if cfg.Input == "" || cfg.Output == "" {
		return nil, errors.New("input and output files are required")
	}
	if cfg.WriteBufferSize == 0 {
		cfg.WriteBufferSize = defaultWriteBufferSize
	}

	r := &Rewriter{
		cfg:    &cfg,
		logger: logger.With("module", module),
	}

	r.Service = services.NewBasicService(nil, r.running, nil)

	return r, nil
}

func (r *Rewriter) running(ctx context.Context) error {
	if _, err := r.Rewrite(ctx); err != nil {
		return err
	}
	return modules.ErrStopProcess
}

// Rewrite copies the input to the output with every frame forced to joint
// stereo.
func (r *Rewriter) Rewrite(ctx context.Context) (res mpeg.RewriteResult, err error) {
	_, span := otel.Tracer(module).Start(ctx, "rewrite")
	span.SetAttributes(
		attribute.String("input", r.cfg.Input),
		attribute.String("output", r.cfg.Output),
	)
	defer func() {
		metricFiles.WithLabelValues(result(err)).Inc()
		metricFrames.Add(float64(res.Frames))
		metricBytes.Add(float64(res.Written))
		span.SetAttributes(attribute.Int("frames", res.Frames))
		err = spans.End(span, err, "rewrite failed", r.logger)
	}()

	src, err := os.Open(r.cfg.Input)
	if err != nil {
		return res, fmt.Errorf("failed to open %s: %w", r.cfg.Input, err)
	}
	defer src.Close()

	// The format is checked before anything is created on disk.
	s, err := mpeg.Open(src)
	if err != nil {
		return res, fmt.Errorf("failed to detect format of %s: %w", r.cfg.Input, err)
	}

	var f *os.File
	if r.cfg.Atomic {
		f, err = os.CreateTemp(filepath.Dir(r.cfg.Output), "*.mp3.tmp")
		if err == nil {
			if err = f.Chmod(0o644); err != nil {
				_ = f.Close()
				_ = os.Remove(f.Name())
			}
		}
	} else {
		if err = r.checkDistinct(); err != nil {
			return res, err
		}
		f, err = os.Create(r.cfg.Output)
	}
	if err != nil {
		return res, fmt.Errorf("failed to create output: %w", err)
	}

	res, err = r.write(f, s)
	if err != nil {
		if r.cfg.Atomic {
			_ = os.Remove(f.Name())
		}
		return res, fmt.Errorf("failed to rewrite %s: %w", r.cfg.Input, err)
	}

	if r.cfg.Atomic {
		if err = r.commitTempFile(f.Name(), r.cfg.Output); err != nil {
			return res, err
		}
	}

	r.logger.Info("rewrote",
		"input", r.cfg.Input,
		"output", r.cfg.Output,
		"variant", s.Variant(),
		"frames", res.Frames,
		"written", res.Written,
		"trailing_tag", res.TrailingTag,
	)

	return res, nil
}

// write streams the converted copy through a write buffer and closes f.
func (r *Rewriter) write(f *os.File, s *mpeg.Stream) (mpeg.RewriteResult, error) {
	w := bufio.NewWriterSize(f, r.cfg.writeBufferSize())

	res, err := s.ForceJointStereo(w)
	if err != nil {
		_ = f.Close()
		return res, err
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return res, fmt.Errorf("flush: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return res, fmt.Errorf("sync: %w", err)
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("close: %w", err)
	}

	return res, nil
}

// commitTempFile renames tempPath over destPath, removing it on failure.
func (r *Rewriter) commitTempFile(tempPath, destPath string) error {
	if err := os.Rename(tempPath, destPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s to %s: %w", tempPath, destPath, err)
	}
	r.logger.Debug("committed output", "path", destPath)
	return nil
}

// checkDistinct rejects writing in place, which would truncate the input
// before it is read.
func (r *Rewriter) checkDistinct() error {
	in, err := os.Stat(r.cfg.Input)
	if err != nil {
		return err
	}
	out, err := os.Stat(r.cfg.Output)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if os.SameFile(in, out) {
		return fmt.Errorf("%s: %w", r.cfg.Output, errSamePath)
	}
	return nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
