package main

import (
	"github.com/egoavara/plugin-directory/cmd"
	"github.com/egoavara/plugin-directory/internal/config"
	"github.com/egoavara/plugin-directory/internal/i18n"
)

func main() {
	// Default locale until the config file is read
	i18n.Init(config.NewConfig().ResolveLocale())

	cmd.Execute()
}
