package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"message-digest-admin/internal/metatag"

	"github.com/spf13/cobra"
)

func tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Inspect the metadata tag catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered tags and their allowed values",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tGROUP\tWEIGHT\tALLOWED")
			for _, d := range metatag.Default().Descriptors() {
				info := d.Info()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", info.ID, info.Name, info.Group, info.Weight, strings.Join(info.AllowedValues, ", "))
			}
			return tw.Flush()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <tag-id> <value>",
		Short: "Check a value against a tag's allowed values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := metatag.Default().Check(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %q is valid\n", args[0], args[1])
			return nil
		},
	})
	return cmd
}
