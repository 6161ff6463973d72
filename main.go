// Package main is the entry point for wemanga.
package main

import (
	"github.com/samber/lo"
	"github.com/wemanga/wemanga/cmd"
	"github.com/wemanga/wemanga/config"
	"github.com/wemanga/wemanga/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
