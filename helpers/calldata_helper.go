package helpers

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// FunctionSelector returns the 4-byte selector of a canonical signature
func FunctionSelector(signature string) []byte {
	return crypto.Keccak256([]byte(strings.ReplaceAll(signature, " ", "")))[:4]
}

// ResolveSelector accepts either a function signature or a raw 0x selector
func ResolveSelector(function string) ([]byte, error) {
	function = strings.TrimSpace(function)
	if function == "" {
		return nil, fmt.Errorf("function is required")
	}
	if IsSelectorValid(function) {
		return hex.DecodeString(function[2:])
	}
	if !strings.Contains(function, "(") || !strings.HasSuffix(function, ")") {
		return nil, fmt.Errorf("function %q is neither a signature nor a 4-byte selector", function)
	}
	return FunctionSelector(function), nil
}

// EncodeCall concatenates a selector with already-encoded arguments
func EncodeCall(selector []byte, args []byte) []byte {
	data := make([]byte, 0, len(selector)+len(args))
	data = append(data, selector...)
	return append(data, args...)
}

// EncodeAddressArg left-pads an address into a 32-byte ABI word
func EncodeAddressArg(address common.Address) []byte {
	return common.LeftPadBytes(address.Bytes(), 32)
}

// EncodeUintArg encodes a small unsigned integer into a 32-byte ABI word
func EncodeUintArg(value uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(value).Bytes(), 32)
}

// IsZeroWord reports whether the return data is empty or all zero bytes
func IsZeroWord(data []byte) bool {
	return len(bytes.TrimLeft(data, "\x00")) == 0
}

// IntrinsicGas returns the base transaction cost plus calldata cost
func IntrinsicGas(data []byte, txGas, zeroGas, nonZeroGas uint64) uint64 {
	gas := txGas
	for _, b := range data {
		if b == 0 {
			gas += zeroGas
		} else {
			gas += nonZeroGas
		}
	}
	return gas
}

// CanonicalKey hashes the ordered parts into a stable cache key
func CanonicalKey(parts ...string) string {
	return crypto.Keccak256Hash([]byte(strings.Join(parts, "|"))).Hex()
}

// PrintableStrings extracts runs of printable ASCII of at least minLen bytes,
// lower-cased, from raw bytecode
func PrintableStrings(code []byte, minLen int) []string {
	var (
		out     []string
		current []byte
	)
	flush := func() {
		if len(current) >= minLen {
			out = append(out, strings.ToLower(string(current)))
		}
		current = current[:0]
	}
	for _, b := range code {
		if b >= 0x20 && b <= 0x7e {
			current = append(current, b)
			continue
		}
		flush()
	}
	flush()
	return out
}

// ContainsPush4Selector reports whether the bytecode pushes the selector with PUSH4,
// which is how solidity dispatch tables compare function ids
func ContainsPush4Selector(code []byte, selector []byte) bool {
	if len(selector) != 4 {
		return false
	}
	needle := append([]byte{0x63}, selector...)
	return bytes.Contains(code, needle)
}
