package update

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/export"
)

func (m Model) exportWorkbook() Model {
	path := filepath.Join(m.exportDir, fmt.Sprintf("habits-%s.xlsx", m.TodayKey))
	if err := export.WriteFile(m.Doc, path); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("export failed: %v", err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("exported %s", path), IsError: false}
	return m
}

func (m Model) exportBackup() Model {
	path := filepath.Join(m.exportDir, fmt.Sprintf("habitd-backup-%s.json", m.TodayKey))
	if err := os.WriteFile(path, []byte(m.Store.ExportData()), 0o644); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("backup failed: %v", err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("backup written to %s", path), IsError: false}
	return m
}

func (m Model) startManualSync() (tea.Model, tea.Cmd) {
	if m.Syncer == nil {
		m.Status = StatusBar{Text: "sync not configured, set HABITD_SYNC_URL", IsError: true}
		return m, nil
	}
	if m.syncActive {
		return m, nil
	}
	m.syncActive = true
	m.Status = StatusBar{Text: "sync started", IsError: false}
	syncer := m.Syncer
	return m, tea.Batch(m.syncSpinner.Tick, func() tea.Msg {
		return SyncResultMsg{Err: syncer.Push(context.Background())}
	})
}
