package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Inspect the storage backend",
	}
	cmd.AddCommand(querySQLCmd())
	return cmd
}
