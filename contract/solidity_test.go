package contract

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robin11110000/niet2code/csprng"
	"github.com/robin11110000/niet2code/groth16"
)

func TestExportSolidity(t *testing.T) {
	rng := csprng.NewUniformSamplerWithSeed([]byte{42})
	_, vk, err := groth16.Setup(rng)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportSolidity(&buf, vk))
	src := buf.String()

	require.True(t, strings.HasPrefix(src, "// SPDX-License-Identifier"))
	require.Contains(t, src, "contract MulVerifier")

	// the key constants are embedded
	var x big.Int
	vk.G1.Alpha.X.BigInt(&x)
	require.Contains(t, src, x.String())
	vk.G2.Gamma.X.A1.BigInt(&x)
	require.Contains(t, src, x.String())
	require.Contains(t, src, "IC0_X")
	require.Contains(t, src, "IC1_Y")

	// the contract pins the statement encoding: inputs outside the
	// scalar field are rejected before any precompile call
	require.Contains(t, src, "SNARK_SCALAR_FIELD")
	require.Contains(t, src, "require(input < SNARK_SCALAR_FIELD")
}
