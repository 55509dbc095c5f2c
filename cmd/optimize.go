package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/betterjpeg/config"
	"github.com/lepinkainen/betterjpeg/jpeg"
	"github.com/lepinkainen/betterjpeg/logging"
	"github.com/lepinkainen/betterjpeg/types"
	"github.com/lepinkainen/betterjpeg/ui"
	"github.com/lepinkainen/betterjpeg/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// OptimizeCmd recompresses every JPEG under a directory in place
type OptimizeCmd struct {
	Directory      string `arg:"" name:"directory" help:"Directory to search for JPEG files" type:"existingdir"`
	AdditionalArgs string `short:"a" name:"additional-args" help:"Additional arguments to pass to the encoder." default:"${encoder_args}"`
	Log            string `short:"l" name:"log" help:"Where to log execution informations." type:"path"`
	Verbose        bool   `short:"v" help:"Show execution related informations."`
	Workers        int    `short:"w" help:"Number of parallel workers." default:"${workers}"`
	IgnoreWarnings bool   `short:"y" name:"ignore-warnings" help:"Supress all user prompts."`
	Executable     string `help:"Encoder executable to run for each file." default:"${executable}"`
	TUI            bool   `name:"tui" help:"Show a live dashboard of the workers instead of a progress bar."`
}

// Options merges the command line with the loaded configuration
func (cmd *OptimizeCmd) Options(cfg *config.Config) jpeg.Options {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := jpeg.Options{
		Directory:      cmd.Directory,
		Extensions:     cfg.Scan.Extensions,
		Executable:     cmd.Executable,
		ExtraArgs:      cmd.AdditionalArgs,
		OutputSuffix:   cfg.Encoder.OutputSuffix,
		Workers:        cmd.Workers,
		CountLimit:     cfg.Warnings.CountLimit,
		SizeLimit:      cfg.Warnings.SizeLimit,
		IgnoreWarnings: cmd.IgnoreWarnings,
	}
	if opts.Executable == "" {
		opts.Executable = cfg.Encoder.Executable
	}
	return opts
}

func (cmd *OptimizeCmd) Run(appCtx *types.AppContext, cfg *config.Config) error {
	out := appCtx.Out()
	if cfg == nil {
		cfg = config.Default()
	}

	fmt.Fprintln(out, ui.HeaderStyle.Render("Welcome to BetterJPEG..."))

	opts := cmd.Options(cfg)
	if _, err := utils.ValidateEncoder(opts.Executable); err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		// Log lines would tear the dashboard apart
		Verbose:    cmd.Verbose && !cmd.TUI,
		Stdout:     out,
		File:       cmd.Log,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer log.Close()

	batch, err := jpeg.Plan(opts, log)
	if err != nil {
		return err
	}

	if err := batch.Confirm(opts, NewPromptConfirmer(appCtx.In(), out)); err != nil {
		if errors.Is(err, jpeg.ErrUserAbort) {
			fmt.Fprintln(out, ui.ErrorStyle.Render("Aborted!"))
		}
		return err
	}

	log.Infof("Optimizing %d files (%s) with %s, %d workers", batch.FileCount(), jpeg.PrettySize(batch.SizeBefore), opts.Executable, opts.Workers)
	optimizer := jpeg.NewOptimizer(opts.Executable, log)

	var summary jpeg.RunSummary
	switch {
	case cmd.TUI:
		summary, err = cmd.runWithTUI(batch, optimizer, opts.Workers, appCtx.AppVersion())
		if err != nil {
			return err
		}
	case !cmd.Verbose && isTerminal(out):
		progress := ui.NewProgressObserver(batch.FileCount(), out)
		summary = batch.Execute(context.Background(), optimizer, jpeg.NewPool(opts.Workers, progress))
		progress.Finish()
	default:
		summary = batch.Execute(context.Background(), optimizer, jpeg.NewPool(opts.Workers, nil))
	}

	log.Infof("Finished in %s, %d failed", summary.Elapsed, summary.Failed)
	PrintSummary(out, summary)
	return nil
}

// runWithTUI dispatches the batch while a bubbletea dashboard follows the workers.
// Closing the dashboard early does not stop the encoders.
func (cmd *OptimizeCmd) runWithTUI(batch *jpeg.Batch, optimizer *jpeg.Optimizer, workers int, version string) (jpeg.RunSummary, error) {
	model := ui.NewDashboardModel(batch.FileCount(), workers, version)
	p := tea.NewProgram(model, tea.WithAltScreen())

	var summary jpeg.RunSummary
	var g errgroup.Group
	g.Go(func() (err error) {
		pool := jpeg.NewPool(workers, ui.NewProgramObserver(p))
		summary, err = executeAndNotify(batch, optimizer, pool, p)
		return err
	})

	_, tuiErr := p.Run()
	if err := g.Wait(); err != nil {
		return summary, err
	}
	if tuiErr != nil {
		optimizer.Log.Errorf("dashboard: %v", tuiErr)
	}
	return summary, nil
}

// executeAndNotify runs the batch and always tells the dashboard it is over,
// turning a panic outside the per-task recovery into an error
func executeAndNotify(batch *jpeg.Batch, optimizer *jpeg.Optimizer, pool *jpeg.Pool, s ui.Sender) (summary jpeg.RunSummary, err error) {
	defer s.Send(ui.RunFinishedMsg{})
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("batch aborted: %v", r)
		}
	}()
	return batch.Execute(context.Background(), optimizer, pool), nil
}

// PrintSummary reports the totals of a finished run
func PrintSummary(w io.Writer, s jpeg.RunSummary) {
	fmt.Fprintln(w, ui.Outcome(s.Saved(), fmt.Sprintf("Finished optimizing %d files, totaling %s (%s saved).",
		s.FileCount, jpeg.PrettySize(s.SizeAfter), jpeg.PrettySize(s.Saved()))))
	if s.Failed > 0 {
		fmt.Fprintln(w, ui.WarningStyle.Render(fmt.Sprintf("%d files could not be optimized, see the log for details.", s.Failed)))
	}
	if s.Unmeasured > 0 {
		fmt.Fprintln(w, ui.WarningStyle.Render(fmt.Sprintf("%d files could not be measured after the run and are left out of the totals.", s.Unmeasured)))
	}
	fmt.Fprintf(w, "Execution took %.2f seconds.\n", s.Elapsed.Seconds())
}

// isTerminal reports whether w is attached to a TTY
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
