package params

import (
	"math/big"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/ethereum/go-ethereum/common"
)

// ArgsProvider returns the encoded arguments for a 1-based run index
type ArgsProvider func(run int) ([]byte, error)

// ProfileFunctionParams contains parameters for profiling one contract function
type ProfileFunctionParams struct {
	Target common.Address
	// Function is a signature such as "transfer(address,uint256)" or a raw 0x selector
	Function         string
	Args             []byte
	ArgsProvider     ArgsProvider
	RunCount         int
	Mode             constants.ProfilingMode
	EstimationMode   constants.EstimationMode // strategy mode for simulation runs
	PaymasterAddress *common.Address
	From             common.Address
	Value            *big.Int
}

// AnalyzeCostsParams contains parameters for a paymaster cost analysis
type AnalyzeCostsParams struct {
	Address common.Address
	// SampleTarget and SampleData describe a representative sponsored call
	SampleTarget  common.Address
	SampleData    []byte
	GasPriceWei   *big.Int
	TimeframeDays int
	DailyTxVolume int
}
