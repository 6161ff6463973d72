package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/style"
)

func init() {
	rootCmd.AddCommand(resumeCmd)
}

var resumeCmd = &cobra.Command{
	Use:     "resume",
	Short:   "Inspect and edit the continue watching log",
	Aliases: []string{"history"},
}

func init() {
	resumeCmd.AddCommand(resumeListCmd)
	resumeListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	resumeListCmd.SetOut(os.Stdout)
}

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved positions, most recent first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := resume.Open().List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("Nothing watched yet"))
			return
		}

		for i, r := range records {
			cmd.Printf("%s %s %s %s %s\n",
				style.Faint(fmt.Sprintf("%2d.", i+1)),
				style.Fg(color.Purple)(r.TitleText),
				r.EpisodeText,
				style.Fg(color.Yellow)(fmt.Sprintf("%d%%", r.Percent())),
				style.Faint(r.Time().Format(time.DateTime)),
			)
		}
	},
}

func init() {
	resumeCmd.AddCommand(resumeRemoveCmd)
}

var resumeRemoveCmd = &cobra.Command{
	Use:   "remove [position]",
	Short: "Forget an entry, by its position in resume list or picked from a prompt",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := resume.Open()
		records, err := store.List()
		handleErr(err)

		if len(records) == 0 {
			cmd.Println(style.Faint("Nothing watched yet"))
			return
		}

		var position int
		if len(args) == 1 {
			position, err = strconv.Atoi(args[0])
			handleErr(err)
		} else {
			if !interactive() {
				handleErr(errors.New("position is required"))
			}

			var index int
			handleErr(survey.AskOne(&survey.Select{
				Message: "Forget which entry?",
				Options: lo.Map(records, func(r *resume.Record, _ int) string {
					return r.String()
				}),
			}, &index))
			position = index + 1
		}

		if position < 1 || position > len(records) {
			handleErr(fmt.Errorf("position must be between 1 and %d", len(records)))
		}

		record := records[position-1]
		handleErr(store.Remove(record.Key()))
		fmt.Printf("%s forgot %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), record)
	},
}

func init() {
	resumeCmd.AddCommand(resumeClearCmd)
	resumeClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var resumeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved position",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			ok, err := confirm("Forget every saved position?")
			handleErr(err)
			if !ok {
				return
			}
		}

		handleErr(resume.Open().Clear())
		fmt.Printf("%s cleared the continue watching log\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
