package count

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GottfriedHerold/Schoof/cmd/schoof/settings"
	"github.com/GottfriedHerold/Schoof/internal/runner"
	"github.com/GottfriedHerold/Schoof/schoof"
)

const algorithmFlag = "algorithm"

var algorithm string

func GetCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "count P A B [P A B ...]",
		Short: "Count the points on y^2 = x^3 + Ax + B over GF(P)",
		Args:  cobra.MinimumNArgs(3),
		RunE:  runCommand,
	}
	cmd.Flags().StringVar(
		&algorithm,
		algorithmFlag,
		"",
		"Used to specify the algorithm (naive, reduced)",
	)
	return cmd
}

func runCommand(cmd *cobra.Command, args []string) error {
	conf, err := settings.Load(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(algorithmFlag) {
		conf.Algorithm = algorithm
	}
	trace, err := schoof.LookupAlgorithm(conf.Algorithm)
	if err != nil {
		return err
	}
	items, err := runner.ItemsFromArgs(args)
	if err != nil {
		return err
	}
	for _, item := range items {
		order, err := schoof.CountPoints(trace, item.P, item.A, item.B, cmd.OutOrStdout())
		if err != nil {
			log.WithField("curve", item.String()).WithError(err).Error("point counting failed")
			return err
		}
		log.WithFields(log.Fields{"curve": item.String(), "algorithm": conf.Algorithm, "order": order.String()}).Info("counted points")
	}
	return nil
}
