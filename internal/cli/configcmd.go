package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piview/piview/pkg/config"
	"github.com/piview/piview/pkg/pi"
)

// newConfigCmd creates the config management command.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the identifier configuration",
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// newConfigPathCmd creates the "config path" subcommand.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("locate config: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	}
}

// newConfigShowCmd creates the "config show" subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a summary of the stored identifier mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("locate config: %w", err)
			}
			store, err := config.Load(path)
			if err != nil {
				return err
			}

			cfg := store.Configuration()
			total := 0
			for _, ns := range []pi.Namespace{
				pi.NamespacePinType,
				pi.NamespaceCommodity,
				pi.NamespaceSchematic,
				pi.NamespacePlanetType,
			} {
				n := cfg.Count(ns)
				total += n
				printKeyValue(ns.String()+"s", strconv.Itoa(n))
			}
			printKeyValue("total", strconv.Itoa(total))
			printKeyValue("file", path)
			return nil
		},
	}
}
