package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wemanga/wemanga/anilist"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/util"
)

func init() {
	rootCmd.AddCommand(upcomingCmd)
	upcomingCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	upcomingCmd.Flags().Bool("no-cache", false, "Skip the cached feed")
	upcomingCmd.SetOut(os.Stdout)
}

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List the next episodes of titles currently airing",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := anilist.NewClient()

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching upcoming episodes...", icon.Get(icon.Progress)))
		var feed anilist.Feed
		if lo.Must(cmd.Flags().GetBool("no-cache")) {
			feed = client.Fetch(context.Background())
		} else {
			feed = client.Get(context.Background())
		}
		erase()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(feed))
			return
		}

		if feed.Notice != "" {
			cmd.Printf("%s %s\n\n", icon.Get(icon.Warn), style.Faint(feed.Notice))
		}

		for _, u := range feed.Episodes {
			line := fmt.Sprintf("%s %s %s",
				icon.Get(icon.Calendar),
				style.Fg(color.Purple)(u.Title),
				fmt.Sprintf("episode %d", u.NextEpisode),
			)
			if score, ok := u.Score().Get(); ok {
				line += style.Fg(color.Yellow)(fmt.Sprintf(" ★ %.1f", score))
			}
			cmd.Println(line)

			details := []string{u.AiringAt.Local().Format(time.DateTime)}
			if len(u.Genres) > 0 {
				details = append(details, strings.Join(u.Genres, ", "))
			}
			cmd.Println("  " + style.Faint(strings.Join(details, " • ")))
		}
	},
}
