package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Hostel power usage dashboard",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(optionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides PORT)")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		out    string
		rooms  []string
		months []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every download CSV and chart PNG for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), out, rooms, months)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "out", "output directory")
	cmd.Flags().StringSliceVar(&rooms, "room", nil, "rooms to include (default all)")
	cmd.Flags().StringSliceVar(&months, "month", nil, "months to include as YYYY-MM (default all)")
	return cmd
}

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the rooms and months available for filtering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOptions(cmd.Context())
		},
	}
}
