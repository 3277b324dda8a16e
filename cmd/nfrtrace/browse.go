package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"nfrtrace/internal/tui"
)

var (
	browseFlags pipelineFlags
	browseTop   int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse ranked FR candidates per NFR interactively",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := *appCfg
		corpus, results, err := runPipeline(cmd.Context(), &cfg, &browseFlags, cmd.Flags().Changed("threshold"))
		if err != nil {
			return err
		}
		top := cfg.TopN
		if cmd.Flags().Changed("top") {
			top = browseTop
		}
		m := tui.New(corpus, results, top)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	browseFlags.register(browseCmd)
	browseCmd.Flags().IntVar(&browseTop, "top", 0, "Initial number of candidates shown per NFR")
	rootCmd.AddCommand(browseCmd)
}
