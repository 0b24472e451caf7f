package cmd

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robin11110000/niet2code/circuit"
	"github.com/robin11110000/niet2code/csprng"
	"github.com/robin11110000/niet2code/groth16"
)

// webApiCmd runs a web server wrapping the prover and verifier.
var webApiCmd = &cobra.Command{
	Use:   "web-api",
	Short: "runs a web server for proof generation and verification",
	Run:   runApi,
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Health check passed",
	})
}

type ProveRequest struct {
	A uint64 `json:"a"`
	B uint64 `json:"b"`
	C uint64 `json:"c"`
}

type VerifyRequest struct {
	Proof hexutil.Bytes `json:"proof"`
	Input hexutil.Bytes `json:"input"`
}

func generateProof(pk *groth16.ProvingKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rng, err := csprng.NewUniformSampler()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		witness := circuit.NewWitness(req.A, req.B, req.C)
		proof, err := groth16.Prove(pk, witness, rng)
		if err != nil {
			if errors.Is(err, groth16.ErrUnsatisfiedConstraint) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "a * b != c"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"proof":    hexutil.Bytes(proof.Bytes()),
			"input":    hexutil.Bytes(groth16.EncodePublicInput(witness.Product)),
			"calldata": hexutil.Bytes(groth16.Calldata(proof, witness.Product)),
		})
	}
}

func verifyProof(vk *groth16.VerifyingKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		proof := &groth16.Proof{}
		if err := proof.SetBytes(req.Proof); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "malformed": true})
			return
		}
		input, err := groth16.DecodePublicInput(req.Input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "malformed": true})
			return
		}

		valid, err := groth16.Verify(vk, proof, input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": valid})
	}
}

func runApi(cmd *cobra.Command, args []string) {
	pk, err := loadProvingKey(fBaseDir)
	if err != nil {
		log.Fatal().Err(err).Msg("web-api failed to load proving key")
	}
	vk, err := loadVerifyingKey(filepath.Join(fBaseDir, verifyingKeyFile))
	if err != nil {
		log.Fatal().Err(err).Msg("web-api failed to load verifying key")
	}

	router := gin.Default()
	router.GET("/health", healthCheck)
	router.POST("/prove", generateProof(pk))
	router.POST("/verify", verifyProof(vk))
	router.Run("0.0.0.0:8010")
}

func init() {
	rootCmd.AddCommand(webApiCmd)
}
