package generate

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GottfriedHerold/Schoof/cmd/schoof/settings"
	"github.com/GottfriedHerold/Schoof/internal/paramgen"
	"github.com/GottfriedHerold/Schoof/internal/runner"
)

const (
	bitsFileFlag       = "bits-file"
	curvesPerPrimeFlag = "curves-per-prime"
	seedFlag           = "seed"
	outputFlag         = "output"
)

var (
	bitsFile       string
	curvesPerPrime int
	seed           int64
	outputFile     string
)

func GetCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate random non-singular curves over primes p = 2^n - k, read as lines \"n, k\"",
		RunE:  runCommand,
	}
	cmd.Flags().StringVar(&bitsFile, bitsFileFlag, "", "File with one pair \"n, k\" per line")
	cmd.Flags().IntVarP(&curvesPerPrime, curvesPerPrimeFlag, "n", 0, "Number of curves per prime")
	cmd.Flags().Int64Var(&seed, seedFlag, 0, "Seed of the random generator. 0 uses the current time")
	cmd.Flags().StringVarP(&outputFile, outputFlag, "o", "", "Write output to this file instead of stdout. The file must not exist")
	return cmd
}

func runCommand(cmd *cobra.Command, _ []string) error {
	conf, err := settings.Load(cmd)
	if err != nil {
		return err
	}
	if bitsFile == "" {
		return fmt.Errorf(settings.FlagMissingError, bitsFileFlag)
	}
	if cmd.Flags().Changed(curvesPerPrimeFlag) {
		conf.CurvesPerPrime = curvesPerPrime
	}
	if conf.CurvesPerPrime < 1 {
		return fmt.Errorf("invalid number of curves per prime: %v", conf.CurvesPerPrime)
	}

	// Fail early if the output cannot be written.
	output, err := runner.OpenOutput(outputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer output.Close()

	f, err := os.Open(bitsFile)
	if err != nil {
		return err
	}
	defer f.Close()
	forms, err := paramgen.ParsePrimeForms(f)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return paramgen.WriteBatch(output, rand.New(rand.NewSource(seed)), forms, conf.CurvesPerPrime)
}
