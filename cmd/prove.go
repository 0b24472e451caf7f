package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robin11110000/niet2code/circuit"
	"github.com/robin11110000/niet2code/groth16"
)

var (
	fA, fB, fC uint64
	fOut       string
	fProveSeed string
)

// proveCmd generates a proof for a * b = c and writes the proof, public
// input and calldata artifacts.
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "generates an anonymous proof for a * b = c and writes proof, public input and calldata",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProve(); err != nil {
			if errors.Is(err, groth16.ErrUnsatisfiedConstraint) {
				log.Fatal().Msgf("inputs don't satisfy the relation: %d * %d != %d", fA, fB, fC)
			}
			log.Fatal().Err(err).Msg("prove failed")
		}
	},
}

func runProve() error {
	pk, err := loadProvingKey(fBaseDir)
	if err != nil {
		return err
	}

	rng, err := setupSampler(fProveSeed)
	if err != nil {
		return err
	}

	witness := circuit.NewWitness(fA, fB, fC)

	log.Info().Msg("Creating proof")
	start := time.Now()
	proof, err := groth16.Prove(pk, witness, rng)
	if err != nil {
		return err
	}
	log.Info().Dur("took", time.Since(start)).Msg("Successfully created proof")

	if err := os.MkdirAll(filepath.Join(fBaseDir, "proofs"), 0755); err != nil {
		return fmt.Errorf("failed to create proofs directory: %w", err)
	}

	proofPath := filepath.Join(fBaseDir, proofFile)
	if err := os.WriteFile(proofPath, proof.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write proof: %w", err)
	}
	inputPath := filepath.Join(fBaseDir, publicInputFile)
	if err := os.WriteFile(inputPath, groth16.EncodePublicInput(witness.Product), 0644); err != nil {
		return fmt.Errorf("failed to write public input: %w", err)
	}
	outPath := fOut
	if outPath == "" {
		outPath = filepath.Join(fBaseDir, calldataFile)
	}
	if err := os.WriteFile(outPath, groth16.Calldata(proof, witness.Product), 0644); err != nil {
		return fmt.Errorf("failed to write calldata: %w", err)
	}

	log.Info().Msg("Proof written to " + proofPath)
	log.Info().Msg("Public input written to " + inputPath)
	log.Info().Msg("Calldata written to " + outPath)
	return nil
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().Uint64Var(&fA, "a", 0, "first secret factor")
	proveCmd.Flags().Uint64Var(&fB, "b", 0, "second secret factor")
	proveCmd.Flags().Uint64Var(&fC, "c", 0, "public product")
	proveCmd.Flags().StringVar(&fOut, "out", "", "output file for calldata (default <dir>/calldata.bin)")
	proveCmd.Flags().StringVar(&fProveSeed, "seed", "", "hex seed for reproducible proofs (insecure)")
	proveCmd.MarkFlagRequired("a")
	proveCmd.MarkFlagRequired("b")
	proveCmd.MarkFlagRequired("c")
}
