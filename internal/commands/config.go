package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/ztoq/internal/config"
	"github.com/gerunddev/ztoq/internal/styles"
	"github.com/spf13/cobra"
)

func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		// Replaces the root hook so a broken config file can still be reset
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	resolve := func() string {
		if *configPath != "" {
			return *configPath
		}
		return config.ConfigPath()
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), resolve())
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolve()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Success("Config written to "+styles.PathStyle.Render(path)))
			fmt.Fprintln(out, styles.Hint("Edit raw_url_template if your images are not served from GitHub"))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}
