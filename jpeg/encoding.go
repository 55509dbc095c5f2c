package jpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// DefaultExecutable is the encoder looked up on PATH when none is configured
const DefaultExecutable = "mozcjpeg"

// DefaultOutputSuffix is appended to the input path to name the encoder output
const DefaultOutputSuffix = ".out"

// Logger is the logging capability the optimizer and the orchestrator need.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Task is one file's unit of work
type Task struct {
	InputPath  string
	OutputPath string
	ExtraArgs  string
}

// NewTask builds the task for inputPath, writing encoder output next to it
func NewTask(inputPath, suffix, extraArgs string) Task {
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	return Task{
		InputPath:  inputPath,
		OutputPath: inputPath + suffix,
		ExtraArgs:  extraArgs,
	}
}

// Optimizer runs the external encoder on single files and swaps the result in place
type Optimizer struct {
	Executable string
	Log        Logger
}

// NewOptimizer returns an optimizer for the given encoder executable
func NewOptimizer(executable string, log Logger) *Optimizer {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Optimizer{
		Executable: executable,
		Log:        log,
	}
}

// Args returns the encoder argument vector for task, without the executable
func (o *Optimizer) Args(task Task) ([]string, error) {
	args, err := shellquote.Split(task.ExtraArgs)
	if err != nil {
		return nil, fmt.Errorf("invalid encoder arguments %q: %w", task.ExtraArgs, err)
	}
	return append(args, task.InputPath), nil
}

// Optimize encodes task.InputPath into task.OutputPath and, when the encoder
// produced any output, replaces the original with it. The encoder's exit
// status is not inspected; an empty output is the only failure signal.
func (o *Optimizer) Optimize(ctx context.Context, task Task) error {
	o.Log.Debugf("input file %q", task.InputPath)

	if err := o.encode(ctx, task); err != nil {
		o.Log.Errorf("Optimization unsuccessful for input %q: %v", task.InputPath, err)
		_ = os.Remove(task.OutputPath)
		return err
	}

	size, err := FileSize(task.OutputPath)
	if err != nil {
		o.Log.Errorf("Optimization unsuccessful for input %q: %v", task.InputPath, err)
		return err
	}

	if size == 0 {
		o.Log.Errorf("Optimization unsuccessful for input %q, discarded changes", task.InputPath)
		if err := os.Remove(task.OutputPath); err != nil {
			o.Log.Errorf("Failed to remove %q: %v", task.OutputPath, err)
		}
		return &EncoderFailureError{Path: task.InputPath}
	}

	return o.commit(task)
}

// encode runs the encoder with stdout redirected into the output file
func (o *Optimizer) encode(ctx context.Context, task Task) error {
	args, err := o.Args(task)
	if err != nil {
		return err
	}

	out, err := os.Create(task.OutputPath)
	if err != nil {
		return &FileAccessError{Op: "create", Path: task.OutputPath, Err: err}
	}

	cmd := exec.CommandContext(ctx, o.Executable, args...)
	cmd.Stdout = out
	// Stderr left nil goes to the null device

	if runErr := cmd.Run(); runErr != nil {
		o.Log.Debugf("encoder for %q: %v", task.InputPath, runErr)
	}

	if err := out.Close(); err != nil {
		return &FileAccessError{Op: "close", Path: task.OutputPath, Err: err}
	}
	return nil
}

// commit deletes the original and renames the encoder output into its place.
// A failed rename after the delete leaves only the output file behind.
func (o *Optimizer) commit(task Task) error {
	if err := os.Remove(task.InputPath); err != nil {
		o.Log.Errorf("Failed to remove original %q, discarded changes: %v", task.InputPath, err)
		_ = os.Remove(task.OutputPath)
		return &FileAccessError{Op: "remove", Path: task.InputPath, Err: err}
	}

	if err := renameFunc(task.OutputPath, task.InputPath); err != nil {
		o.Log.Errorf("Failed to move %q into place: %v", task.OutputPath, err)
		return &FileAccessError{Op: "rename", Path: task.OutputPath, Err: err}
	}

	return nil
}

// swapped in tests to simulate rename failures
var renameFunc = os.Rename
