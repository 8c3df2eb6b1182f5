package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "vidsift",
		Short:         "Extract and spam-filter YouTube comments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "vidsift.yaml", "path to config file")

	root.AddCommand(
		newAnalyzeCommand(),
		newExtractCommand(),
		newServeCommand(),
		newVersionCommand(),
	)

	if err := root.Execute(); err != nil {
		log.SetFlags(0)
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
