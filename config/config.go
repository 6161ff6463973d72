// Package config declares every setting with its default and loads them into viper.
//
// Values are resolved in this order: flags bound by cmd, WEMANGA_* environment
// variables, the wemanga.toml file in where.Config(), then the defaults of Default.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/filesystem"
	"github.com/wemanga/wemanga/where"
)

// EnvKeyReplacer turns "player.resume" into the PLAYER_RESUME suffix of the variable name.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads the settings. A missing config file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Wemanga)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	bindEnv()
	setDefaults()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func bindEnv() {
	viper.SetEnvPrefix(constant.Wemanga)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, key := range EnvExposed {
		viper.MustBindEnv(key)
	}
}

func setDefaults() {
	// env values are strings, cast them to the default's type
	viper.SetTypeByDefaultValue(true)
	for key, field := range Default {
		viper.SetDefault(key, field.Value)
	}
}
