package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	fBaseDir string
)

var rootCmd = &cobra.Command{
	Use:   "niet2code",
	Short: "anonymous proof of a * b = c with Groth16 over BN254",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fBaseDir, "dir", ".", "base directory for keys, proofs and calldata")
}
