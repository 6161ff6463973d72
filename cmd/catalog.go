package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/classify"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/util"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the catalog from the command line",
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.Flags().StringP("kind", "k", "", "Only list titles of this kind (serie, film)")
	catalogListCmd.Flags().StringP("query", "q", "", "Only list titles matching the text")
	catalogListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	lo.Must0(catalogListCmd.RegisterFlagCompletionFunc("kind", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(catalog.KindSerie), string(catalog.KindFilm)}, cobra.ShellCompDirectiveNoFileComp
	}))
	catalogListCmd.SetOut(os.Stdout)
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog titles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		kind := catalog.Kind(lo.Must(cmd.Flags().GetString("kind")))
		if kind != "" && kind != catalog.KindSerie && kind != catalog.KindFilm {
			handleErr(fmt.Errorf("unknown kind %q", kind))
		}

		titles := c.Filter(kind, lo.Must(cmd.Flags().GetString("query")))

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(titles))
			return
		}

		for _, t := range titles {
			cmd.Printf("%s %s %s\n",
				style.Faint(fmt.Sprintf("%4d", t.ID)),
				style.Fg(color.Purple)(t.Title),
				style.Faint(util.Quantify(t.EpisodeCount(), "episode", "episodes")),
			)
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogShowCmd.SetOut(os.Stdout)
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show the seasons and episodes of a title",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		title, err := resolveTitle(c, strings.Join(args, " "))
		handleErr(err)

		cmd.Println(style.Title(title.Title))
		if title.Description != "" {
			cmd.Println(style.Faint(title.Description))
		}
		if len(title.Genres) > 0 {
			cmd.Println(style.Fg(color.Cyan)(strings.Join(title.Genres, ", ")))
		}

		for _, s := range title.Seasons {
			cmd.Println()
			cmd.Println(style.Bold(fmt.Sprintf("Season %d %s", s.Number, style.Faint(s.Title))))
			for i, e := range s.Episodes {
				src := classify.Classify(e.VideoURL)
				mark := icon.Get(icon.Play)
				if !src.Playable() {
					mark = icon.Get(icon.Fail)
				}
				cmd.Printf("  %s %s %s %s\n", style.Faint(fmt.Sprintf("%2d.", i+1)), mark, e.Title, style.Faint(string(src.Kind)))
			}
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
	catalogSchemaCmd.Flags().BoolP("resume", "r", false, "Generate the schema of the continue watching log instead")
}

var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the catalog file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("resume")) {
			schema = reflector.Reflect([]*resume.Record{})
		} else {
			schema = reflector.Reflect(&catalog.Catalog{})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
