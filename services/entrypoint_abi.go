package services

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// paymasterABIJSON covers the ERC-4337 v0.6 IPaymaster entry points
const paymasterABIJSON = `[
	{"type":"function","name":"validatePaymasterUserOp","stateMutability":"nonpayable","inputs":[
		{"name":"userOp","type":"tuple","components":[
			{"name":"sender","type":"address"},
			{"name":"nonce","type":"uint256"},
			{"name":"initCode","type":"bytes"},
			{"name":"callData","type":"bytes"},
			{"name":"callGasLimit","type":"uint256"},
			{"name":"verificationGasLimit","type":"uint256"},
			{"name":"preVerificationGas","type":"uint256"},
			{"name":"maxFeePerGas","type":"uint256"},
			{"name":"maxPriorityFeePerGas","type":"uint256"},
			{"name":"paymasterAndData","type":"bytes"},
			{"name":"signature","type":"bytes"}]},
		{"name":"userOpHash","type":"bytes32"},
		{"name":"maxCost","type":"uint256"}],
	 "outputs":[{"name":"context","type":"bytes"},{"name":"validationData","type":"uint256"}]},
	{"type":"function","name":"postOp","stateMutability":"nonpayable","inputs":[
		{"name":"mode","type":"uint8"},
		{"name":"context","type":"bytes"},
		{"name":"actualGasCost","type":"uint256"}],
	 "outputs":[]}
]`

// Representative gas limits for the synthetic user operation
var (
	sampleCallGasLimit         = big.NewInt(200000)
	sampleVerificationGasLimit = big.NewInt(150000)
	samplePreVerificationGas   = big.NewInt(50000)
	sampleMaxFeePerGas         = big.NewInt(12_000_000_000)
	sampleMaxPriorityFeePerGas = big.NewInt(1_000_000_000)
	sampleActualGasCost        = big.NewInt(1_000_000_000_000_000)
)

var paymasterABI = mustParseABI(paymasterABIJSON)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid paymaster abi: %v", err))
	}
	return parsed
}

// userOperation mirrors the v0.6 UserOperation tuple; field order matters for packing
type userOperation struct {
	Sender               common.Address
	Nonce                *big.Int
	InitCode             []byte
	CallData             []byte
	CallGasLimit         *big.Int
	VerificationGasLimit *big.Int
	PreVerificationGas   *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	PaymasterAndData     []byte
	Signature            []byte
}

// encodeValidatePaymasterUserOp packs a synthetic user operation sponsoring req
func encodeValidatePaymasterUserOp(paymaster common.Address, req business.EstimationRequest) ([]byte, error) {
	op := userOperation{
		Sender:               req.From,
		Nonce:                big.NewInt(0),
		InitCode:             []byte{},
		CallData:             append([]byte{}, req.Data...),
		CallGasLimit:         sampleCallGasLimit,
		VerificationGasLimit: sampleVerificationGasLimit,
		PreVerificationGas:   samplePreVerificationGas,
		MaxFeePerGas:         sampleMaxFeePerGas,
		MaxPriorityFeePerGas: sampleMaxPriorityFeePerGas,
		PaymasterAndData:     paymaster.Bytes(),
		Signature:            make([]byte, 65),
	}
	maxCost := new(big.Int).Mul(sampleMaxFeePerGas,
		new(big.Int).Add(sampleCallGasLimit, new(big.Int).Add(sampleVerificationGasLimit, samplePreVerificationGas)))
	userOpHash := crypto.Keccak256Hash(paymaster.Bytes(), req.Target.Bytes(), req.Data)

	data, err := paymasterABI.Pack("validatePaymasterUserOp", op, userOpHash, maxCost)
	if err != nil {
		return nil, fmt.Errorf("failed to pack validatePaymasterUserOp: %w", err)
	}
	return data, nil
}

// encodePostOp packs postOp(opSucceeded, empty context, sample cost)
func encodePostOp() ([]byte, error) {
	data, err := paymasterABI.Pack("postOp", uint8(0), []byte{}, sampleActualGasCost)
	if err != nil {
		return nil, fmt.Errorf("failed to pack postOp: %w", err)
	}
	return data, nil
}
