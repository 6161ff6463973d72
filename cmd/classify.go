package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wemanga/wemanga/classify"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/style"
)

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	classifyCmd.SetOut(os.Stdout)
}

// classifiedURL is the JSON form of a classification.
type classifiedURL struct {
	URL   string        `json:"url"`
	Kind  classify.Kind `json:"kind"`
	Ref   string        `json:"ref,omitempty"`
	Error string        `json:"error,omitempty"`
}

var classifyCmd = &cobra.Command{
	Use:     "classify <url>...",
	Short:   "Show how video URLs would be played",
	Args:    cobra.MinimumNArgs(1),
	Example: "  wemanga classify https://youtu.be/dQw4w9WgXcQ",
	Run: func(cmd *cobra.Command, args []string) {
		sources := lo.Map(args, func(raw string, _ int) classify.Source {
			return classify.Classify(raw)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			out := lo.Map(sources, func(s classify.Source, _ int) classifiedURL {
				c := classifiedURL{URL: s.Raw, Kind: s.Kind, Ref: s.Ref}
				if s.Err != nil {
					c.Error = s.Err.Error()
				}
				return c
			})
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(out))
			return
		}

		for _, s := range sources {
			if !s.Playable() {
				reason := classify.ErrUnresolvable.Error()
				if s.Err != nil {
					reason = s.Err.Error()
				}
				cmd.Printf("%s %s %s\n", icon.Get(icon.Fail), style.Fg(color.Red)(string(s.Kind)), style.Faint(reason))
				continue
			}

			mark := icon.Get(icon.Film)
			if s.Native() {
				mark = icon.Get(icon.Play)
			}
			cmd.Printf("%s %s %s\n", mark, style.Fg(color.Purple)(string(s.Kind)), s.Ref)
		}
	},
}
