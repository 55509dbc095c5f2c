package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ResultItem is one finished file in the dashboard list
type ResultItem struct {
	Path string
	Err  string // empty on success
}

func (r ResultItem) FilterValue() string { return r.Path }
func (r ResultItem) Title() string       { return filepath.Base(r.Path) }
func (r ResultItem) Description() string {
	if r.Err != "" {
		return "❌ " + r.Err
	}
	return "✓ " + filepath.Dir(r.Path)
}

// Failed reports whether the file kept its original bytes
func (r ResultItem) Failed() bool { return r.Err != "" }

type workerSlot struct {
	file string // empty while idle
	done int
}

// DashboardModel follows a running batch: overall progress, the file each
// encoder worker holds, and the files already finished.
type DashboardModel struct {
	total   int
	failed  int
	slots   map[int]*workerSlot
	results []ResultItem

	bar     progress.Model
	history list.Model

	finished bool
	hidden   bool

	Version string
}

// NewDashboardModel prepares a dashboard for files spread over workers
func NewDashboardModel(files, workers int, version string) DashboardModel {
	if workers <= 0 {
		workers = 1
	}

	slots := make(map[int]*workerSlot, workers)
	for id := 0; id < workers; id++ {
		slots[id] = &workerSlot{}
	}

	history := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	history.Title = "Finished"
	history.SetShowStatusBar(false)

	return DashboardModel{
		total:   files,
		slots:   slots,
		bar:     progress.New(progress.WithDefaultGradient()),
		history: history,
		Version: version,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if k := msg.String(); k == "q" || k == "ctrl+c" {
			// Encoders keep running, only the dashboard goes away
			m.hidden = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.history.SetSize(msg.Width-4, msg.Height/3)

	case WorkerStartedMsg:
		if slot, ok := m.slots[msg.WorkerID]; ok {
			slot.file = msg.Filename
		}

	case WorkerCompletedMsg:
		if slot, ok := m.slots[msg.WorkerID]; ok {
			slot.file = ""
			slot.done++
		}
		m.record(msg)

	case RunFinishedMsg:
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *DashboardModel) record(msg WorkerCompletedMsg) {
	item := ResultItem{Path: msg.Filename}
	if !msg.Success {
		m.failed++
		item.Err = "failed"
		if msg.Error != nil {
			item.Err = msg.Error.Error()
		}
	}
	m.results = append(m.results, item)

	// Newest first
	items := make([]list.Item, len(m.results))
	for i, r := range m.results {
		items[len(m.results)-1-i] = r
	}
	m.history.SetItems(items)
}

// Processed returns the number of files that have finished either way
func (m DashboardModel) Processed() int {
	return len(m.results)
}

func (m DashboardModel) View() string {
	switch {
	case m.hidden:
		return "Waiting for running encoders to finish...\n"
	case m.finished:
		return ""
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.Processed()) / float64(m.total)
	}

	return strings.Join([]string{
		HeaderStyle.Render("BetterJPEG " + m.Version),
		fmt.Sprintf("%s %d/%d files, %d failed", m.bar.ViewAs(ratio), m.Processed(), m.total, m.failed),
		m.renderWorkers(),
		m.history.View(),
		InfoStyle.Render("q: hide dashboard"),
	}, "\n\n")
}

func (m DashboardModel) renderWorkers() string {
	ids := make([]int, 0, len(m.slots))
	for id := range m.slots {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b strings.Builder
	b.WriteString("Workers:")
	for _, id := range ids {
		slot := m.slots[id]
		fmt.Fprintf(&b, "\n  #%d ", id+1)
		if slot.file != "" {
			b.WriteString(ProcessingStyle.Render("encoding") + " " + slot.file)
		} else {
			fmt.Fprintf(&b, "idle (%d done)", slot.done)
		}
	}
	return b.String()
}
