package cmd

import (
	"fmt"

	"github.com/lepinkainen/betterjpeg/config"
	"github.com/lepinkainen/betterjpeg/jpeg"
	"github.com/lepinkainen/betterjpeg/logging"
	"github.com/lepinkainen/betterjpeg/types"
	"github.com/lepinkainen/betterjpeg/ui"
)

// ScanCmd lists the files an optimize run would touch, without running the encoder
type ScanCmd struct {
	Directory string `arg:"" name:"directory" help:"Directory to search for JPEG files" type:"existingdir"`
}

func (cmd *ScanCmd) Run(appCtx *types.AppContext, cfg *config.Config) error {
	out := appCtx.Out()
	if cfg == nil {
		cfg = config.Default()
	}

	opts := jpeg.Options{
		Directory:    cmd.Directory,
		Extensions:   cfg.Scan.Extensions,
		OutputSuffix: cfg.Encoder.OutputSuffix,
		CountLimit:   cfg.Warnings.CountLimit,
		SizeLimit:    cfg.Warnings.SizeLimit,
	}

	fmt.Fprintln(out, ui.ProcessingStyle.Render("🔍 DRY RUN MODE - No files will be modified"))

	batch, err := jpeg.Plan(opts, logging.Nop())
	if err != nil {
		return err
	}

	for _, file := range batch.Files {
		size, err := jpeg.FileSize(file)
		if err != nil {
			fmt.Fprintf(out, "%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
			continue
		}
		fmt.Fprintf(out, "%10s  %s\n", jpeg.PrettySize(size), file)
	}

	total, _, _ := jpeg.TotalSize(batch.Files)
	fmt.Fprintln(out, ui.InfoStyle.Render(fmt.Sprintf("There are %d optimizable files, totaling %s.",
		batch.FileCount(), jpeg.PrettySize(total))))
	if batch.NeedsConfirmation(opts) {
		fmt.Fprintln(out, ui.WarningStyle.Render("⚠️  An optimize run would ask for confirmation (use -y to skip it)."))
	}

	return nil
}
