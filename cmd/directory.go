package cmd

import (
	"errors"
	"os"

	"github.com/egoavara/plugin-directory/internal/i18n"
	"github.com/egoavara/plugin-directory/internal/marketplace"
)

// loadDirectory reads the built directory document from the configured path
func loadDirectory(path string) (*marketplace.Directory, error) {
	if path == "" {
		path = appConfig.DirectoryOutput
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(i18n.T("DirectoryNotFound", map[string]any{"Path": path}))
	}
	return marketplace.LoadDirectory(path)
}
