package cmd

import (
	"context"
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
	versionCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

type versionInfo struct {
	App        string `json:"app"`
	Version    string `json:"version"`
	Revision   string `json:"revision"`
	BuiltAt    string `json:"builtAt"`
	BuiltBy    string `json:"builtBy"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Repository string `json:"repository"`
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Releases" }}        https://github.com/{{ .Repository }}/releases
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := versionInfo{
			App:        constant.Wemanga,
			Version:    constant.Version,
			Revision:   constant.Revision,
			BuiltAt:    strings.TrimSpace(constant.BuiltAt),
			BuiltBy:    constant.BuiltBy,
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Repository: constant.Repository,
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		defer version.Notify(context.Background())
		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
