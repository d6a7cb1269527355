package cli

import (
	"github.com/spf13/cobra"

	"github.com/fabrizia2/blogfocus/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive post browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	opts, err := sessionOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.PageSize = cfg.GetPageSize()

	return tui.Run(opts)
}
