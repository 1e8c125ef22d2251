package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ahmabora1/usvc/internal/config"
	"github.com/ahmabora1/usvc/internal/lifecycle"
	"github.com/ahmabora1/usvc/internal/logger"
	"github.com/ahmabora1/usvc/internal/prompt"
	"github.com/ahmabora1/usvc/internal/registrar"
	"github.com/ahmabora1/usvc/internal/runner"
	"github.com/ahmabora1/usvc/internal/store"
	"github.com/ahmabora1/usvc/internal/systemd"
)

// app holds the collaborators shared by the sub-commands
type app struct {
	cfg       *config.Config
	home      string
	logger    *slog.Logger
	store     *store.Store
	systemd   *systemd.Client
	registrar *registrar.Client
}

func loadApp() (*app, error) {
	if configErr != nil {
		return nil, configErr
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	home, err := config.HomeDir()
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: verbose,
	})
	if path := config.ConfigPath(); path != "" {
		log.Debug("config loaded", "path", path)
	}

	r := runner.NewExec(os.Stdout, os.Stderr, log)

	return &app{
		cfg:       cfg,
		home:      home,
		logger:    log,
		store:     store.New(cfg.UnitDir),
		systemd:   systemd.New(r, cfg.Systemctl, log),
		registrar: registrar.New(r, cfg.RegistrarOptions(), log),
	}, nil
}

// orchestrator wires the lifecycle orchestrator to the terminal.
// requireTTY refuses to run when stdin is not a terminal.
func (a *app) orchestrator(requireTTY bool) (*lifecycle.Orchestrator, error) {
	p, err := prompt.NewStdio(requireTTY)
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	return lifecycle.New(
		lifecycle.Env{Home: a.home, WorkDir: wd},
		lifecycle.Deps{
			Prompter:  p,
			Manager:   a.systemd,
			Registrar: a.registrar,
			Store:     a.store,
			Logger:    a.logger,
			Out:       os.Stdout,
		},
	), nil
}

// quietSystemd returns a systemd client that does not write to the terminal
func (a *app) quietSystemd() *systemd.Client {
	return systemd.New(runner.NewExec(io.Discard, io.Discard, a.logger), a.cfg.Systemctl, a.logger)
}

// finish turns a declined confirmation into a clean exit
func finish(err error) error {
	if errors.Is(err, lifecycle.ErrAborted) {
		fmt.Println("Aborted.")
		return nil
	}
	return err
}
