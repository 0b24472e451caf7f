// Package contract renders an on-chain verifier for the multiplication
// relation from a verifying key. The emitted Solidity contract checks the
// same pairing equation through the alt_bn128 precompiles, so it shares
// its trust root with the key pair it was rendered from.
package contract

import (
	"io"
	"math/big"
	"text/template"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/robin11110000/niet2code/groth16"
)

type g1Consts struct {
	X, Y string
}

type g2Consts struct {
	X1, X0, Y1, Y0 string
}

type templateData struct {
	Alpha g1Consts
	Beta  g2Consts
	Gamma g2Consts
	Delta g2Consts
	IC    []g1Consts
}

// ExportSolidity writes the verifier contract for vk to w.
func ExportSolidity(w io.Writer, vk *groth16.VerifyingKey) error {
	data := templateData{
		Alpha: g1Vals(&vk.G1.Alpha),
		Beta:  g2Vals(&vk.G2.Beta),
		Gamma: g2Vals(&vk.G2.Gamma),
		Delta: g2Vals(&vk.G2.Delta),
	}
	for i := range vk.G1.K {
		data.IC = append(data.IC, g1Vals(&vk.G1.K[i]))
	}

	tmpl, err := template.New("verifier").Parse(solidityTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

func g1Vals(p *curve.G1Affine) g1Consts {
	var x, y big.Int
	p.X.BigInt(&x)
	p.Y.BigInt(&y)
	return g1Consts{x.String(), y.String()}
}

func g2Vals(p *curve.G2Affine) g2Consts {
	var x1, x0, y1, y0 big.Int
	p.X.A1.BigInt(&x1)
	p.X.A0.BigInt(&x0)
	p.Y.A1.BigInt(&y1)
	p.Y.A0.BigInt(&y0)
	return g2Consts{x1.String(), x0.String(), y1.String(), y0.String()}
}

const solidityTemplate = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.19;

// Groth16 verifier for the relation a * b = c (c public).
// Generated from a verifying key; do not edit.
contract MulVerifier {
    uint256 constant PRIME_Q = 21888242871839275222246405745257275088696311157297823662689037894645226208583;
    uint256 constant SNARK_SCALAR_FIELD = 21888242871839275222246405745257275088548364400416034343698204186575808495617;

    uint256 constant ALPHA_X = {{.Alpha.X}};
    uint256 constant ALPHA_Y = {{.Alpha.Y}};
    uint256 constant BETA_X1 = {{.Beta.X1}};
    uint256 constant BETA_X0 = {{.Beta.X0}};
    uint256 constant BETA_Y1 = {{.Beta.Y1}};
    uint256 constant BETA_Y0 = {{.Beta.Y0}};
    uint256 constant GAMMA_X1 = {{.Gamma.X1}};
    uint256 constant GAMMA_X0 = {{.Gamma.X0}};
    uint256 constant GAMMA_Y1 = {{.Gamma.Y1}};
    uint256 constant GAMMA_Y0 = {{.Gamma.Y0}};
    uint256 constant DELTA_X1 = {{.Delta.X1}};
    uint256 constant DELTA_X0 = {{.Delta.X0}};
    uint256 constant DELTA_Y1 = {{.Delta.Y1}};
    uint256 constant DELTA_Y0 = {{.Delta.Y0}};
{{- range $i, $p := .IC}}
    uint256 constant IC{{$i}}_X = {{$p.X}};
    uint256 constant IC{{$i}}_Y = {{$p.Y}};
{{- end}}

    function negate(uint256 x, uint256 y) internal pure returns (uint256, uint256) {
        if (x == 0 && y == 0) {
            return (0, 0);
        }
        return (x, PRIME_Q - (y % PRIME_Q));
    }

    function ecAdd(uint256 ax, uint256 ay, uint256 bx, uint256 by)
        internal view returns (uint256, uint256)
    {
        uint256[4] memory input = [ax, ay, bx, by];
        uint256[2] memory out;
        bool ok;
        assembly {
            ok := staticcall(gas(), 6, input, 0x80, out, 0x40)
        }
        require(ok, "ec-add failed");
        return (out[0], out[1]);
    }

    function ecMul(uint256 px, uint256 py, uint256 s)
        internal view returns (uint256, uint256)
    {
        uint256[3] memory input = [px, py, s];
        uint256[2] memory out;
        bool ok;
        assembly {
            ok := staticcall(gas(), 7, input, 0x60, out, 0x40)
        }
        require(ok, "ec-mul failed");
        return (out[0], out[1]);
    }

    // verifyProof checks e(-A,B) * e(alpha,beta) * e(vk_x,gamma) * e(C,delta) == 1.
    function verifyProof(
        uint256[2] calldata a,
        uint256[2][2] calldata b,
        uint256[2] calldata c,
        uint256 input
    ) external view returns (bool) {
        // keep the statement encoding unique: ecMul reduces mod the group
        // order, so without this check every input + k*r would verify
        require(input < SNARK_SCALAR_FIELD, "input not in scalar field");
        (uint256 vkxX, uint256 vkxY) = ecMul(IC1_X, IC1_Y, input);
        (vkxX, vkxY) = ecAdd(IC0_X, IC0_Y, vkxX, vkxY);
        (uint256 negAX, uint256 negAY) = negate(a[0], a[1]);

        uint256[24] memory pairs = [
            negAX, negAY, b[0][0], b[0][1], b[1][0], b[1][1],
            ALPHA_X, ALPHA_Y, BETA_X1, BETA_X0, BETA_Y1, BETA_Y0,
            vkxX, vkxY, GAMMA_X1, GAMMA_X0, GAMMA_Y1, GAMMA_Y0,
            c[0], c[1], DELTA_X1, DELTA_X0, DELTA_Y1, DELTA_Y0
        ];
        uint256[1] memory out;
        bool ok;
        assembly {
            ok := staticcall(gas(), 8, pairs, 0x300, out, 0x20)
        }
        require(ok, "pairing failed");
        return out[0] == 1;
    }
}
`
