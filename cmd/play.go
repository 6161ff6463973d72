package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/session"
	"github.com/wemanga/wemanga/style"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("season", "s", 0, "Season number, the first season when omitted")
	playCmd.Flags().IntP("episode", "e", 0, "Episode position in the season, starting at 1")
}

var playCmd = &cobra.Command{
	Use:     "play <title>",
	Short:   "Play an episode without the interface",
	Long:    "Play an episode of a catalog title. The title is matched by id, by name or by search.",
	Args:    cobra.MinimumNArgs(1),
	Example: "  wemanga play frieren -s 1 -e 3",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(checkPlayer(viper.GetString(key.Player)))

		a, err := newApp()
		handleErr(err)

		title, err := resolveTitle(a.catalog, strings.Join(args, " "))
		handleErr(err)

		season, episode, err := pickEpisode(
			title,
			lo.Must(cmd.Flags().GetInt("season")),
			lo.Must(cmd.Flags().GetInt("episode")),
		)
		handleErr(err)

		handleErr(a.watch(title, season, episode))
	},
}

// watch plays one episode and blocks until the player exits or the user interrupts.
// Leaving always detaches the tracker so the final position is recorded.
func (a *app) watch(title *catalog.Title, season *catalog.Season, episode *catalog.Episode) error {
	controller := session.New(a.tracker, a.surface, nil)
	defer controller.Close()

	controller.OnProgress(func(fraction float64) {
		fmt.Printf("\r%s %s %3.0f%%", icon.Get(icon.Play), episode, fraction*100)
	})

	if err := controller.PlayEpisode(title, season, episode); err != nil {
		return err
	}
	if failure := controller.Failure(); failure != "" {
		return errors.New(failure)
	}

	state := controller.State()
	fmt.Printf("%s %s %s %s\n",
		icon.Get(icon.Play),
		style.Fg(color.Purple)(title.Title),
		style.Faint(season.String()),
		episode,
	)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	done := a.surface.Done()
	if done == nil {
		fmt.Printf("%s Opened %s in the browser, press enter when you are done\n", icon.Get(icon.Progress), state.Source.Kind)
		done = waitForEnter()
	}

	select {
	case <-done:
	case <-interrupt:
	}
	fmt.Println()
	return nil
}

func waitForEnter() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		close(done)
	}()
	return done
}
