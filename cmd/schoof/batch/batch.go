package batch

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GottfriedHerold/Schoof/cmd/schoof/settings"
	"github.com/GottfriedHerold/Schoof/internal/config"
	"github.com/GottfriedHerold/Schoof/internal/runner"
)

const (
	algorithmFlag = "algorithm"
	inputFlag     = "input"
	outputFlag    = "output"
	workersFlag   = "workers"
	timeoutFlag   = "timeout"
	formatFlag    = "format"
	statsFlag     = "stats"
)

var flagValues = config.GetDefaultConfig()

func GetCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "batch [P A B ...]",
		Short: "Count points on all curves of an input file and/or the command line",
		RunE:  runCommand,
	}
	setFlags(cmd)
	return cmd
}

func setFlags(cmd *cobra.Command) {
	d := config.GetDefaultConfig()
	cmd.Flags().StringVar(&flagValues.Algorithm, algorithmFlag, d.Algorithm, "Used to specify the algorithm (naive, reduced)")
	cmd.Flags().StringVar(&flagValues.InputFile, inputFlag, "", "File with one curve \"p A B\" per line")
	cmd.Flags().StringVar(&flagValues.OutputFile, outputFlag, "", "Write results to this file instead of stdout. The file must not exist")
	cmd.Flags().IntVar(&flagValues.Workers, workersFlag, d.Workers, "Number of curves processed in parallel")
	cmd.Flags().StringVar(&flagValues.Timeout, timeoutFlag, d.Timeout, "Time limit per curve, e.g. 30s. 0 means no limit")
	cmd.Flags().StringVar(&flagValues.Format, formatFlag, d.Format, "Output format (text, json)")
	cmd.Flags().BoolVar(&flagValues.Stats, statsFlag, false, "Print operation counts to stderr after the run")
}

// applyFlags copies the explicitly given flags over conf.
func applyFlags(cmd *cobra.Command, conf *config.Config) {
	flags := cmd.Flags()
	if flags.Changed(algorithmFlag) {
		conf.Algorithm = flagValues.Algorithm
	}
	if flags.Changed(inputFlag) {
		conf.InputFile = flagValues.InputFile
	}
	if flags.Changed(outputFlag) {
		conf.OutputFile = flagValues.OutputFile
	}
	if flags.Changed(workersFlag) {
		conf.Workers = flagValues.Workers
	}
	if flags.Changed(timeoutFlag) {
		conf.Timeout = flagValues.Timeout
	}
	if flags.Changed(formatFlag) {
		conf.Format = flagValues.Format
	}
	if flags.Changed(statsFlag) {
		conf.Stats = flagValues.Stats
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	conf, err := settings.Load(cmd)
	if err != nil {
		return err
	}
	applyFlags(cmd, conf)
	if err := conf.Validate(); err != nil {
		return err
	}

	items, err := runner.ItemsFromArgs(args)
	if err != nil {
		return err
	}
	if conf.InputFile != "" {
		f, err := os.Open(conf.InputFile)
		if err != nil {
			return err
		}
		fileItems, err := runner.ReadItems(f, conf.InputFile)
		f.Close()
		if err != nil {
			return err
		}
		items = append(items, fileItems...)
	}
	if len(items) == 0 {
		log.Warn("no curves given")
		return nil
	}

	// Fail before the computation if the output cannot be written.
	output, err := runner.OpenOutput(conf.OutputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer output.Close()

	r, err := runner.New(conf)
	if err != nil {
		return err
	}
	results := r.Run(context.Background(), items)
	if err := runner.WriteResults(output, results, conf.Format); err != nil {
		return err
	}
	if conf.Stats {
		return runner.WriteStats(cmd.ErrOrStderr())
	}
	return nil
}
