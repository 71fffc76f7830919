package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath    string
	templatesPath string
	envPath       string
	verbose       bool
)

func main() {
	root := &cobra.Command{
		Use:   "comicstudio",
		Short: "Workbench for comic universes, characters and scripts",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "comicstudio.yaml", "Project config file")
	flags.StringVar(&templatesPath, "templates", "templates.yaml", "Category templates file")
	flags.StringVar(&envPath, "env-file", ".env", "Environment file loaded before the config")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(initCmd())
	root.AddCommand(universeCmd())
	root.AddCommand(viewCmd())
	root.AddCommand(getCmd())
	root.AddCommand(addCmd())
	root.AddCommand(updateCmd())
	root.AddCommand(deleteCmd())
	root.AddCommand(authorCmd())
	root.AddCommand(categoryCmd())
	root.AddCommand(imageCmd())
	root.AddCommand(suggestCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(importCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
