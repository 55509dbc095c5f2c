package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/betterjpeg/jpeg"
	"github.com/schollz/progressbar/v3"
)

// ProgressObserver advances a progress bar as files finish
type ProgressObserver struct {
	bar *progressbar.ProgressBar
}

// NewProgressObserver returns an observer drawing a bar for total files on w
func NewProgressObserver(total int, w io.Writer) *ProgressObserver {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Optimizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressObserver{bar: bar}
}

func (p *ProgressObserver) TaskStarted(workerID int, task jpeg.Task) {}

func (p *ProgressObserver) TaskFinished(workerID int, task jpeg.Task, err error) {
	_ = p.bar.Add(1)
}

// Finish completes and clears the bar
func (p *ProgressObserver) Finish() {
	_ = p.bar.Finish()
}

// Sender is the part of *tea.Program the dashboard observer needs
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramObserver forwards worker events to a running bubbletea program
type ProgramObserver struct {
	program Sender
}

// NewProgramObserver returns an observer feeding s
func NewProgramObserver(s Sender) *ProgramObserver {
	return &ProgramObserver{program: s}
}

func (o *ProgramObserver) TaskStarted(workerID int, task jpeg.Task) {
	o.program.Send(WorkerStartedMsg{WorkerID: workerID, Filename: task.InputPath})
}

func (o *ProgramObserver) TaskFinished(workerID int, task jpeg.Task, err error) {
	o.program.Send(WorkerCompletedMsg{
		WorkerID: workerID,
		Filename: task.InputPath,
		Success:  err == nil,
		Error:    err,
	})
}
