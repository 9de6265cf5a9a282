package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the match settings as YAML, after the search path has been
applied. The first line names the file they came from.

Search order:
  --config <path>
  ~/.arcade/configs/pong.yaml
  ./configs/pong.yaml
  built-in defaults

Examples:
  pong config
  pong config > ~/.arcade/configs/pong.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, source, err := config.LoadPong(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	data, err := cfg.Marshal()
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data)
}
