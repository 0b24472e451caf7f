package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robin11110000/niet2code/groth16"
)

// Artifact locations under the base directory, one file per type.
const (
	provingKeyFile   = "keys/proving_key.bin"
	verifyingKeyFile = "keys/verifying_key.bin"
	proofFile        = "proofs/proof.bin"
	publicInputFile  = "proofs/public_input.bin"
	calldataFile     = "calldata.bin"
)

func saveKeys(dir string, pk *groth16.ProvingKey, vk *groth16.VerifyingKey) error {
	if err := os.MkdirAll(filepath.Join(dir, "keys"), 0755); err != nil {
		return fmt.Errorf("failed to create keys directory: %w", err)
	}

	pkPath := filepath.Join(dir, provingKeyFile)
	log.Info().Msg("Saving proving key to " + pkPath)
	start := time.Now()
	if err := os.WriteFile(pkPath, pk.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write proving key: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("Successfully saved proving key")

	vkPath := filepath.Join(dir, verifyingKeyFile)
	log.Info().Msg("Saving verifying key to " + vkPath)
	if err := os.WriteFile(vkPath, vk.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write verifying key: %w", err)
	}
	return nil
}

func loadProvingKey(dir string) (*groth16.ProvingKey, error) {
	buf, err := os.ReadFile(filepath.Join(dir, provingKeyFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read proving key (run setup first): %w", err)
	}
	start := time.Now()
	pk := &groth16.ProvingKey{}
	if err := pk.SetBytes(buf); err != nil {
		return nil, err
	}
	log.Debug().Dur("took", time.Since(start)).Msg("Successfully loaded proving key")
	return pk, nil
}

func loadVerifyingKey(path string) (*groth16.VerifyingKey, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read verifying key: %w", err)
	}
	vk := &groth16.VerifyingKey{}
	if err := vk.SetBytes(buf); err != nil {
		return nil, err
	}
	return vk, nil
}
