package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func stagedCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staged",
		Short: "Inspect content staged for the next digest",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List staged content",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()
			if status == "" {
				status = a.cfg.Digest.Status
			}
			items, err := a.staging.ListStaged(cmd.Context(), status)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No old content")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NODE\tTITLE")
			for _, it := range items {
				fmt.Fprintf(tw, "%d\t%s\n", it.NodeID, it.Title)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "Staging status (default from config)")

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export staged content as an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()
			data, err := a.form.ExportStaged(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	export.Flags().StringVarP(&out, "output", "o", "staged_content.xlsx", "Output file")

	cmd.AddCommand(list, export)
	return cmd
}
