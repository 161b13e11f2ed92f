package main

import (
	"fmt"

	"message-digest-admin/internal/domain"
	"message-digest-admin/internal/form"

	"github.com/spf13/cobra"
)

func settingsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or write " + domain.AdminSettingsName,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()
			cfg, err := a.settings.Immutable(cmd.Context(), domain.AdminSettingsName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.GetString(args[0]))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set welcome_message <value>",
		Short: "Update the digest welcome message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != domain.SettingWelcomeMessage {
				return fmt.Errorf("unknown setting %q (only %s is editable)", args[0], domain.SettingWelcomeMessage)
			}
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.form.Submit(cmd.Context(), form.Values{args[0]: args[1]}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "The configuration options have been saved.")
			return nil
		},
	})
	return cmd
}
