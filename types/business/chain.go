package business

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallRequest describes a contract call sent to the chain oracle
type CallRequest struct {
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
	Gas   uint64
}

// FeeData mirrors the fee fields reported by the network. Any field may be nil.
type FeeData struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// EffectiveGasPrice returns the price used for cost estimates, preferring
// the legacy gas price and falling back to the EIP-1559 max fee.
func (f *FeeData) EffectiveGasPrice() *big.Int {
	if f == nil {
		return nil
	}
	if f.GasPrice != nil && f.GasPrice.Sign() > 0 {
		return f.GasPrice
	}
	if f.MaxFeePerGas != nil && f.MaxFeePerGas.Sign() > 0 {
		return f.MaxFeePerGas
	}
	return nil
}

// TraceResult is the subset of a call trace used for gas accounting
type TraceResult struct {
	GasUsed uint64
	Failed  bool
	Error   string
}

// TransactionReceipt contains the settled outcome of a submitted transaction
type TransactionReceipt struct {
	TxHash            common.Hash
	BlockNumber       uint64
	GasUsed           uint64
	EffectiveGasPrice *big.Int
	Status            uint64 // 1 = success, 0 = failed
}
