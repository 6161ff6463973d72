package version

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/util"
)

// Notify prints a notice when a newer release exists and cli.version_check is on.
func Notify(ctx context.Context) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}
