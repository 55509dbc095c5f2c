package cmd

import (
	"fmt"

	"github.com/lepinkainen/betterjpeg/config"
	"github.com/lepinkainen/betterjpeg/types"
	"github.com/lepinkainen/betterjpeg/ui"
	"github.com/lepinkainen/betterjpeg/utils"
)

// CheckCmd verifies the encoder can be found before a long run is started
type CheckCmd struct {
	Executable string `help:"Encoder executable to look for." default:"${executable}"`
}

func (cmd *CheckCmd) Run(appCtx *types.AppContext, cfg *config.Config) error {
	out := appCtx.Out()

	executable := cmd.Executable
	if executable == "" && cfg != nil {
		executable = cfg.Encoder.Executable
	}

	path, err := utils.ValidateEncoder(executable)
	if err != nil {
		fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
		return err
	}

	fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("✅ %s found at %s", executable, path)))
	return nil
}
