// Package cmd implements the command-line interface for wemanga.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/anilist"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/player"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/tui"
	"github.com/wemanga/wemanga/util"
	"github.com/wemanga/wemanga/version"
	"github.com/wemanga/wemanga/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("player", "P", "", "Surface used for direct video files (mpv, iina, browser)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{player.BackendMPV, player.BackendIINA, player.BackendBrowser}, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.PersistentFlags().String("catalog", "", "Path to the catalog JSON file")
	lo.Must0(viper.BindPFlag(key.CatalogPath, rootCmd.PersistentFlags().Lookup("catalog")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume the most recent entry of the continue watching log")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(context.Background())
	})

	// leftover mpv sockets from a previous run
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the wemanga application.
var rootCmd = &cobra.Command{
	Use:   constant.Wemanga,
	Short: "Browse a streaming catalog and pick up episodes where you left them",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse a streaming catalog and pick up episodes where you left them"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(checkPlayer(viper.GetString(key.Player)))

		a, err := newApp()
		handleErr(err)

		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Catalog:  a.catalog,
			Store:    a.store,
			Surface:  a.surface,
			Tracker:  a.tracker,
			Upcoming: anilist.NewClient(),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
