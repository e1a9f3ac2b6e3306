package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "ntfsidx"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - NTFS Master File Table indexer",
	}

	rootCmd.AddCommand(DefineScanCommand())

	return rootCmd.Execute()
}
