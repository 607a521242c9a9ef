package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigreer/diskinfo/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "diskinfo %s\n", version.Version)
		},
	}
}
