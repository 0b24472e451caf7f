package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robin11110000/niet2code/groth16"
	"github.com/robin11110000/niet2code/sandbox"
)

var (
	fProofPath string
	fInputPath string
	fVkPath    string
	fSandboxed bool
)

// verifyCmd checks a proof locally. A malformed artifact is reported as a
// decode failure before any pairing work; a well-formed proof that does
// not satisfy the equation is a clean FAILED result.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verifies a proof against its public input and verifying key",
	Run: func(cmd *cobra.Command, args []string) {
		valid, err := runVerify()
		if err != nil {
			var dErr *groth16.DecodeError
			if errors.As(err, &dErr) {
				log.Fatal().Err(err).Msg("artifact malformed, rejected before the pairing check")
			}
			log.Fatal().Err(err).Msg("verify failed")
		}
		if !valid {
			log.Error().Msg("proof verification: FAILED")
			os.Exit(1)
		}
		log.Info().Msg("proof verification: PASSED")
	},
}

func runVerify() (bool, error) {
	proofPath := fProofPath
	if proofPath == "" {
		proofPath = filepath.Join(fBaseDir, proofFile)
	}
	inputPath := fInputPath
	if inputPath == "" {
		inputPath = filepath.Join(fBaseDir, publicInputFile)
	}
	vkPath := fVkPath
	if vkPath == "" {
		vkPath = filepath.Join(fBaseDir, verifyingKeyFile)
	}

	proofBytes, err := os.ReadFile(proofPath)
	if err != nil {
		return false, fmt.Errorf("failed to read proof: %w", err)
	}
	inputBytes, err := os.ReadFile(inputPath)
	if err != nil {
		return false, fmt.Errorf("failed to read public input: %w", err)
	}
	vk, err := loadVerifyingKey(vkPath)
	if err != nil {
		return false, err
	}

	proof := &groth16.Proof{}
	if err := proof.SetBytes(proofBytes); err != nil {
		return false, err
	}
	input, err := groth16.DecodePublicInput(inputBytes)
	if err != nil {
		return false, err
	}

	if fSandboxed {
		v, err := sandbox.NewVerifier(vk.Bytes(), sandbox.PrecompileHost{})
		if err != nil {
			return false, err
		}
		return v.Run(groth16.Calldata(proof, input)) == sandbox.ResultValid, nil
	}
	return groth16.Verify(vk, proof, input)
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&fProofPath, "proof", "", "proof file (default <dir>/proofs/proof.bin)")
	verifyCmd.Flags().StringVar(&fInputPath, "input", "", "public input file (default <dir>/proofs/public_input.bin)")
	verifyCmd.Flags().StringVar(&fVkPath, "vk", "", "verifying key file (default <dir>/keys/verifying_key.bin)")
	verifyCmd.Flags().BoolVar(&fSandboxed, "sandboxed", false, "run the check through the sandboxed verifier instead of the host-side one")
}
