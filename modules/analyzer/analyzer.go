package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/grafana/dskit/modules"
	"github.com/grafana/dskit/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/zachfi/mp3walk/pkg/mpeg"
	"github.com/zachfi/mp3walk/pkg/spans"
)

type Analyzer struct {
	services.Service
	cfg    *Config
	logger *slog.Logger
	out    io.Writer
}

var module = "analyzer"

// New creates an Analyzer which reports on every configured input and then
// asks the process to stop.
func New(cfg Config, logger slog.Logger, out io.Writer) (*Analyzer, error) {
	if len(cfg.Inputs) == 0 {
		return nil, errors.New("no input files")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}

	a := &Analyzer{
		cfg:    &cfg,
		logger: logger.With("module", module),
		out:    out,
	}

	a.Service = services.NewBasicService(nil, a.running, nil)

	return a, nil
}

func (a *Analyzer) running(ctx context.Context) error {
	if err := a.AnalyzeAll(ctx); err != nil {
		return err
	}
	return modules.ErrStopProcess
}

// AnalyzeAll analyzes the inputs concurrently and writes their reports in
// input order. The first failure cancels the files not yet started, which
// report as canceled.
func (a *Analyzer) AnalyzeAll(ctx context.Context) error {
	reports := make([]bytes.Buffer, len(a.cfg.Inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Concurrency)

	for i, path := range a.cfg.Inputs {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				fmt.Fprintf(&reports[i], "*error* : %s : canceled\n", path)
				metricFiles.WithLabelValues("canceled").Inc()
				return ctx.Err()
			default:
			}
			return a.analyzeFile(ctx, path, &reports[i])
		})
	}

	err := g.Wait()

	for i := range reports {
		if _, werr := a.out.Write(reports[i].Bytes()); werr != nil && err == nil {
			err = fmt.Errorf("failed to write report: %w", werr)
		}
	}

	return err
}

func (a *Analyzer) analyzeFile(ctx context.Context, path string, w io.Writer) error {
	_, span := otel.Tracer(module).Start(ctx, "analyze")
	span.SetAttributes(attribute.String("path", path))

	err := a.analyze(path, w)
	metricFiles.WithLabelValues(result(err)).Inc()
	if err != nil {
		fmt.Fprintf(w, "*error* : %s : %v\n", path, err)
	}

	return spans.End(span, err, "analysis failed", a.logger)
}

func (a *Analyzer) analyze(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	s, err := mpeg.Open(f)
	if err != nil {
		return fmt.Errorf("failed to detect format of %s: %w", path, err)
	}

	layout, err := s.Locate()
	if err != nil {
		return fmt.Errorf("failed to locate frames in %s: %w", path, err)
	}
	writeHeader(w, path, s.Variant(), layout)

	var fn mpeg.FrameFunc
	if a.cfg.Frames {
		fn = func(fr mpeg.Frame) { writeFrame(w, fr) }
	}

	sum, err := mpeg.WalkToEnd(f, layout.Region, fn)
	metricFrames.Add(float64(sum.Frames))
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", path, err)
	}
	writeSummary(w, sum)

	a.logger.Info("analyzed",
		"path", path,
		"variant", s.Variant(),
		"frames", sum.Frames,
		"sample_rate", sum.SampleRate(),
		"channels", sum.Channels(),
	)

	if a.cfg.SkipFrames > 0 {
		res, err := s.SkipFrames(a.cfg.SkipFrames)
		if err != nil {
			return fmt.Errorf("failed to skip frames in %s: %w", path, err)
		}
		writeSkip(w, a.cfg.SkipFrames, res)
	}

	return nil
}
