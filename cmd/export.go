package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robin11110000/niet2code/contract"
)

// exportCmd renders the Solidity verifier contract from the verifying key.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "exports a Solidity verifier contract generated from the verifying key",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExport(); err != nil {
			log.Fatal().Err(err).Msg("export failed")
		}
	},
}

func runExport() error {
	vk, err := loadVerifyingKey(filepath.Join(fBaseDir, verifyingKeyFile))
	if err != nil {
		return err
	}

	path := filepath.Join(fBaseDir, "MulVerifier.sol")
	contractFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create solidity file: %w", err)
	}
	defer contractFile.Close()

	w := bufio.NewWriter(contractFile)
	if err := contract.ExportSolidity(w, vk); err != nil {
		return fmt.Errorf("failed to export verifying key to solidity: %w", err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Info().Msg("Solidity verifier written to " + path)
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
