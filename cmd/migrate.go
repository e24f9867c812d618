package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"english-hub/config"
	"english-hub/gateway"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the activity and comment tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		gw, err := gateway.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer gw.Close()

		m, ok := gw.(gateway.Migrator)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "gateway %q keeps no schema; nothing to migrate\n", cfg.GatewayDriver)
			return nil
		}
		if err := m.Migrate(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", cfg.GatewayDriver)
		return nil
	},
}
