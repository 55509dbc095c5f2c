package jpeg

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultCountLimit is the file count above which the user is asked to confirm
	DefaultCountLimit = 50
	// DefaultSizeLimit is the total size above which the user is asked to confirm (100MB)
	DefaultSizeLimit int64 = 100 * mb
)

// Options configures a batch run
type Options struct {
	Directory      string
	Extensions     []string
	Executable     string
	ExtraArgs      string
	OutputSuffix   string
	Workers        int
	CountLimit     int
	SizeLimit      int64
	IgnoreWarnings bool
}

// DefaultOptions returns the stock settings for optimizing dir
func DefaultOptions(dir string) Options {
	return Options{
		Directory:    dir,
		Extensions:   DefaultExtensions,
		Executable:   DefaultExecutable,
		OutputSuffix: DefaultOutputSuffix,
		Workers:      DefaultWorkers,
		CountLimit:   DefaultCountLimit,
		SizeLimit:    DefaultSizeLimit,
	}
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// RunSummary is the before/after accounting of a batch. FileCount and the
// sizes cover the files that could be measured after the run; Unmeasured
// counts the planned files that could not.
type RunSummary struct {
	FileCount  int
	SizeBefore int64
	SizeAfter  int64
	Failed     int
	Unmeasured int
	Elapsed    time.Duration
}

// Saved returns the bytes saved by the run; negative when files grew
func (s RunSummary) Saved() int64 {
	return s.SizeBefore - s.SizeAfter
}

// Batch is a scanned and measured set of files, ready to be optimized.
// Sizes runs parallel to Files, -1 where a file could not be measured.
type Batch struct {
	Files      []string
	Tasks      []Task
	Sizes      []int64
	SizeBefore int64
}

// Plan scans opts.Directory and measures the files found
func Plan(opts Options, log Logger) (*Batch, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	files, skipped, err := ScanDir(opts.Directory, exts)
	if err != nil {
		return nil, err
	}
	for _, err := range skipped {
		log.Warnf("Skipping unreadable entry: %v", err)
	}

	tasks := make([]Task, 0, len(files))
	for _, file := range files {
		tasks = append(tasks, NewTask(file, opts.OutputSuffix, opts.ExtraArgs))
	}

	sizes, errs := MeasureFiles(files)
	for _, err := range errs {
		log.Warnf("Cannot measure file: %v", err)
	}

	var total int64
	for _, size := range sizes {
		if size > 0 {
			total += size
		}
	}

	return &Batch{
		Files:      files,
		Tasks:      tasks,
		Sizes:      sizes,
		SizeBefore: total,
	}, nil
}

// FileCount returns the number of files in the batch
func (b *Batch) FileCount() int {
	return len(b.Files)
}

// NeedsConfirmation reports whether the batch is large enough to ask the user first
func (b *Batch) NeedsConfirmation(opts Options) bool {
	if opts.IgnoreWarnings {
		return false
	}
	return b.FileCount() > opts.CountLimit || b.SizeBefore > opts.SizeLimit
}

// ConfirmPrompt is the question asked before a large batch
func (b *Batch) ConfirmPrompt() string {
	return fmt.Sprintf("There are %d optimizable files, totaling %s. Continue ?", b.FileCount(), PrettySize(b.SizeBefore))
}

// Confirm asks c for permission when the batch needs it. A declined or
// unanswered prompt returns ErrUserAbort.
func (b *Batch) Confirm(opts Options, c Confirmer) error {
	if !b.NeedsConfirmation(opts) {
		return nil
	}
	if c == nil {
		return ErrUserAbort
	}
	ok, err := c.Confirm(b.ConfirmPrompt())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserAbort, err)
	}
	if !ok {
		return ErrUserAbort
	}
	return nil
}

// Execute optimizes every file in the batch and measures the result.
// It returns only after every task has finished.
func (b *Batch) Execute(ctx context.Context, optimizer *Optimizer, pool *Pool) RunSummary {
	start := time.Now()
	failed := pool.Dispatch(ctx, b.Tasks, optimizer.Optimize)
	elapsed := time.Since(start)

	after, errs := MeasureFiles(b.Files)
	for _, err := range errs {
		optimizer.Log.Warnf("Cannot measure file: %v", err)
	}

	// Only files measured on both sides count towards the totals
	summary := RunSummary{Unmeasured: len(errs)}
	for i, size := range after {
		if size < 0 {
			continue
		}
		summary.FileCount++
		summary.SizeAfter += size
		if i < len(b.Sizes) && b.Sizes[i] > 0 {
			summary.SizeBefore += b.Sizes[i]
		}
	}

	summary.Failed = failed
	summary.Elapsed = elapsed
	return summary
}

// Run scans, confirms when needed, optimizes and measures in one go
func Run(ctx context.Context, opts Options, log Logger, c Confirmer, obs Observer) (RunSummary, error) {
	batch, err := Plan(opts, log)
	if err != nil {
		return RunSummary{}, err
	}

	if err := batch.Confirm(opts, c); err != nil {
		return RunSummary{}, err
	}

	optimizer := NewOptimizer(opts.Executable, log)
	pool := NewPool(opts.Workers, obs)
	return batch.Execute(ctx, optimizer, pool), nil
}
