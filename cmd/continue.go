package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/resume"
)

func init() {
	rootCmd.AddCommand(continueCmd)
}

var continueCmd = &cobra.Command{
	Use:   "continue",
	Short: "Resume the most recent entry of the continue watching log",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(checkPlayer(viper.GetString(key.Player)))

		a, err := newApp()
		handleErr(err)

		entries, err := resume.Rail(a.store, a.catalog, 1)
		handleErr(err)
		if len(entries) == 0 {
			handleErr(errors.New("nothing to continue"))
		}

		entry := entries[0]
		handleErr(a.watch(entry.Title, entry.Season, entry.Episode))
	},
}
