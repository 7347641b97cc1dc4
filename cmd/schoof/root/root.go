package root

import (
	"github.com/spf13/cobra"

	"github.com/GottfriedHerold/Schoof/cmd/schoof/batch"
	"github.com/GottfriedHerold/Schoof/cmd/schoof/count"
	"github.com/GottfriedHerold/Schoof/cmd/schoof/generate"
	"github.com/GottfriedHerold/Schoof/cmd/schoof/settings"
	"github.com/GottfriedHerold/Schoof/cmd/schoof/version"
)

func GetRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "schoof",
		Short:         "Count points on elliptic curves over prime fields with Schoof's algorithm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	settings.SetGlobalFlags(rootCmd)
	rootCmd.AddCommand(count.GetCommand())
	rootCmd.AddCommand(batch.GetCommand())
	rootCmd.AddCommand(generate.GetCommand())
	rootCmd.AddCommand(version.GetCommand())
	return rootCmd
}
