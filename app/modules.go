package app

import (
	"context"
	"fmt"

	"github.com/grafana/dskit/modules"
	"github.com/grafana/dskit/server"
	"github.com/grafana/dskit/services"
	"github.com/pkg/errors"

	"github.com/zachfi/mp3walk/modules/analyzer"
	"github.com/zachfi/mp3walk/modules/inspector"
	"github.com/zachfi/mp3walk/modules/rewriter"
)

const (
	Server string = "server"

	Analyzer  string = "analyzer"
	Rewriter  string = "rewriter"
	Inspector string = "inspector"

	All string = "all"
)

func (a *App) setupModuleManager() error {
	mm := modules.NewManager(a.kitLogger)
	mm.RegisterModule(Server, a.initServer, modules.UserInvisibleModule)

	mm.RegisterModule(Analyzer, a.initAnalyzer)
	mm.RegisterModule(Rewriter, a.initRewriter)
	mm.RegisterModule(Inspector, a.initInspector)

	mm.RegisterModule(All, nil)

	deps := map[string][]string{
		// Analyzer and Rewriter are one-shot and run without the server.
		Inspector: {Server},

		All: {Inspector},
	}

	for mod, targets := range deps {
		if err := mm.AddDependency(mod, targets...); err != nil {
			return err
		}
	}

	a.ModuleManager = mm

	return nil
}

func (a *App) initAnalyzer() (services.Service, error) {
	m, err := analyzer.New(a.cfg.Analyzer, a.logger, a.out)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init "+Analyzer)
	}

	return m, nil
}

func (a *App) initRewriter() (services.Service, error) {
	m, err := rewriter.New(a.cfg.Rewriter, a.logger)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init "+Rewriter)
	}

	return m, nil
}

func (a *App) initInspector() (services.Service, error) {
	m, err := inspector.New(a.cfg.Inspector, a.logger)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init "+Inspector)
	}

	a.Server.HTTP.Handle(m.PathPrefix(), m)

	return m, nil
}

func (a *App) initServer() (services.Service, error) {
	a.cfg.Server.MetricsNamespace = metricsNamespace
	a.cfg.Server.ExcludeRequestInLog = true
	a.cfg.Server.RegisterInstrumentation = true
	a.cfg.Server.Log = a.kitLogger

	server, err := server.New(a.cfg.Server)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create server")
	}

	servicesToWaitFor := func() []services.Service {
		svs := []services.Service(nil)
		for m, s := range a.serviceMap {
			// Server should not wait for itself.
			if m != Server {
				svs = append(svs, s)
			}
		}

		return svs
	}

	a.Server = server

	serverDone := make(chan error, 1)

	runFn := func(ctx context.Context) error {
		go func() {
			defer close(serverDone)
			serverDone <- server.Run()
		}()

		select {
		case <-ctx.Done():
			return nil
		case err := <-serverDone:
			if err != nil {
				return err
			}

			return fmt.Errorf("server stopped unexpectedly")
		}
	}

	stoppingFn := func(_ error) error {
		// wait until all modules are done, and then shutdown server.
		for _, s := range servicesToWaitFor() {
			_ = s.AwaitTerminated(context.Background())
		}

		// shutdown HTTP and gRPC servers (this also unblocks Run)
		server.Shutdown()

		// if not closed yet, wait until server stops.
		<-serverDone
		a.logger.Info("server stopped")
		return nil
	}

	return services.NewBasicService(nil, runFn, stoppingFn), nil
}
