package helpers

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsAddressValid checks if the provided string is a valid Ethereum address
// It verifies:
// 1. The address is exactly 42 characters long (including 0x prefix)
// 2. The address starts with "0x"
// 3. The remaining 40 characters are valid hexadecimal
func IsAddressValid(address string) bool {
	if len(address) != 42 {
		return false
	}

	if !strings.HasPrefix(address, "0x") {
		return false
	}

	return isHex(address[2:])
}

// IsPrivateKeyValid checks if the provided string is a valid hex private key,
// with or without the 0x prefix
func IsPrivateKeyValid(key string) bool {
	key = strings.TrimPrefix(key, "0x")
	if len(key) != 64 {
		return false
	}
	return isHex(key)
}

// IsSelectorValid checks for a raw 4-byte selector such as 0xa9059cbb
func IsSelectorValid(selector string) bool {
	if len(selector) != 10 || !strings.HasPrefix(selector, "0x") {
		return false
	}
	return isHex(selector[2:])
}

// IsZeroAddress reports whether the address is the zero address
func IsZeroAddress(address common.Address) bool {
	return address == (common.Address{})
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
