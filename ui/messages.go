package ui

// TUI Message Types for worker communication
type WorkerStartedMsg struct {
	WorkerID int
	Filename string
}

type WorkerCompletedMsg struct {
	WorkerID int
	Filename string
	Success  bool
	Error    error
}

// RunFinishedMsg is sent once every task has completed
type RunFinishedMsg struct{}
