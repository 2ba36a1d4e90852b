package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/syncclient"
	"github.com/ozankoca/habitd/internal/update"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	st := store.New(cfg.DataFilePath)

	var syncer *syncclient.Syncer
	if cfg.SyncEnabled() {
		syncer = syncclient.New(syncclient.Config{
			BaseURL:  cfg.SyncURL,
			Username: cfg.SyncUsername,
			Password: cfg.SyncPassword,
			Debounce: cfg.SyncDebounce,
		}, st)
		if err := syncer.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "habitd: sync disabled: %v\n", err)
			syncer = nil
		} else {
			defer syncer.Stop()
		}
	}

	model := update.NewModelWithConfig(st, cfg, syncer)
	defer model.Close()

	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "habitd failed: %v\n", err)
		os.Exit(1)
	}
}
