package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robin11110000/niet2code/csprng"
	"github.com/robin11110000/niet2code/groth16"
)

var (
	fSeed  string
	fForce bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "runs the one-time trusted setup and writes the proving/verifying key pair",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSetup(); err != nil {
			log.Fatal().Err(err).Msg("setup failed")
		}
	},
}

func runSetup() error {
	pkPath := filepath.Join(fBaseDir, provingKeyFile)
	if _, err := os.Stat(pkPath); err == nil && !fForce {
		return fmt.Errorf("%s already exists; a new setup is a new trust root that invalidates "+
			"all proofs made under the old keys, pass --force to replace it", pkPath)
	}

	rng, err := setupSampler(fSeed)
	if err != nil {
		return err
	}

	log.Info().Msg("Running circuit setup")
	pk, vk, err := groth16.Setup(rng)
	if err != nil {
		return err
	}
	return saveKeys(fBaseDir, pk, vk)
}

// setupSampler builds the randomness source: seeded for reproducible
// fixture keys, crypto/rand otherwise.
func setupSampler(seed string) (*csprng.UniformSampler, error) {
	if seed == "" {
		return csprng.NewUniformSampler()
	}
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, fmt.Errorf("seed must be hex: %w", err)
	}
	log.Warn().Msg("Using a fixed seed; the resulting keys are for testing only")
	return csprng.NewUniformSamplerWithSeed(raw), nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().StringVar(&fSeed, "seed", "", "hex seed for reproducible test keys (insecure)")
	setupCmd.Flags().BoolVar(&fForce, "force", false, "replace existing keys")
}
