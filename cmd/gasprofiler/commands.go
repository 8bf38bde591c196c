package main

import (
	"fmt"
	"math/big"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/api/params"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func parseAddress(flag, value string) (common.Address, error) {
	if !helpers.IsAddressValid(value) {
		return common.Address{}, fmt.Errorf("--%s: %q is not a 0x-prefixed 20-byte address", flag, value)
	}
	return common.HexToAddress(value), nil
}

func parseOptionalAddress(flag, value string) (*common.Address, error) {
	if value == "" {
		return nil, nil
	}
	address, err := parseAddress(flag, value)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func parseHex(flag, value string) ([]byte, error) {
	if value == "" || value == "0x" {
		return nil, nil
	}
	data, err := hexutil.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return data, nil
}

func parseWei(flag, value string) (*big.Int, error) {
	if value == "" {
		return nil, nil
	}
	wei, ok := new(big.Int).SetString(value, 10)
	if !ok || wei.Sign() <= 0 {
		return nil, fmt.Errorf("--%s: %q is not a positive wei amount", flag, value)
	}
	return wei, nil
}

func newEstimateCmd(a *app) *cobra.Command {
	var target, data, mode, paymaster, from string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate gas for one call using the strategy chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetAddr, err := parseAddress("target", target)
			if err != nil {
				return err
			}
			calldata, err := parseHex("data", data)
			if err != nil {
				return err
			}
			paymasterAddr, err := parseOptionalAddress("paymaster", paymaster)
			if err != nil {
				return err
			}

			req := business.NewEstimationRequest(targetAddr, calldata)
			req.Mode = constants.EstimationMode(mode)
			req.PaymasterAddress = paymasterAddr
			req.UseCache = !noCache
			if from != "" {
				if req.From, err = parseAddress("from", from); err != nil {
					return err
				}
			}

			result, err := a.engine.Estimator.Simulate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&target, "target", "", "contract address")
	flags.StringVar(&data, "data", "", "hex calldata including the 4-byte selector")
	flags.StringVar(&mode, "mode", string(constants.ModeAuto), "auto, trace, estimate, staticCall or paymaster")
	flags.StringVar(&paymaster, "paymaster", "", "paymaster address sponsoring the call")
	flags.StringVar(&from, "from", "", "caller address")
	flags.BoolVar(&noCache, "no-cache", false, "bypass the estimation cache")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	var target, argsHex, mode, estimationMode, paymaster, from string
	var functions []string
	var runs int

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile one or more functions over repeated runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetAddr, err := parseAddress("target", target)
			if err != nil {
				return err
			}
			encodedArgs, err := parseHex("args", argsHex)
			if err != nil {
				return err
			}
			paymasterAddr, err := parseOptionalAddress("paymaster", paymaster)
			if err != nil {
				return err
			}
			var fromAddr common.Address
			if from != "" {
				if fromAddr, err = parseAddress("from", from); err != nil {
					return err
				}
			}

			requests := make([]params.ProfileFunctionParams, 0, len(functions))
			for _, function := range functions {
				requests = append(requests, params.ProfileFunctionParams{
					Target:           targetAddr,
					Function:         function,
					Args:             encodedArgs,
					RunCount:         runs,
					Mode:             constants.ProfilingMode(mode),
					EstimationMode:   constants.EstimationMode(estimationMode),
					PaymasterAddress: paymasterAddr,
					From:             fromAddr,
				})
			}

			if len(requests) == 1 {
				profile, err := a.engine.Profiler.ProfileFunction(cmd.Context(), requests[0])
				if err != nil {
					return err
				}
				return a.render(cmd, profile)
			}

			results := a.engine.Batch.ProfileAll(cmd.Context(), requests)
			profiles := make([]*business.FunctionProfile, 0, len(results))
			failed := 0
			for _, result := range results {
				if result.Err != nil {
					failed++
					a.log.Error("profiling failed",
						zap.String("function", result.Params.Function),
						zap.Error(result.Err))
					continue
				}
				profiles = append(profiles, result.Profile)
			}
			if err := a.render(cmd, profiles); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d functions failed to profile", failed, len(results))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&target, "target", "", "contract address")
	flags.StringSliceVar(&functions, "function", nil, "function signature or 0x selector; repeat to profile several")
	flags.StringVar(&argsHex, "args", "", "hex encoded arguments shared by every run")
	flags.IntVar(&runs, "runs", 3, "number of runs per function")
	flags.StringVar(&mode, "mode", string(constants.ProfilingModeSimulation), "simulation or transaction")
	flags.StringVar(&estimationMode, "estimation-mode", string(constants.ModeAuto), "strategy mode for simulation runs")
	flags.StringVar(&paymaster, "paymaster", "", "paymaster address sponsoring the runs")
	flags.StringVar(&from, "from", "", "caller address for simulation runs")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("function")
	return cmd
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <paymaster>",
		Short: "Classify a paymaster by probing its interface and bytecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress("paymaster", args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, a.engine.Classifier.Classify(cmd.Context(), address))
		},
	}
}

// analysisFlags are shared by analyze and compare
type analysisFlags struct {
	sampleTarget string
	sampleData   string
	gasPrice     string
	days         int
	volume       int
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.sampleTarget, "sample-target", "", "target of a representative sponsored call")
	flags.StringVar(&f.sampleData, "sample-data", "", "hex calldata of a representative sponsored call")
	flags.StringVar(&f.gasPrice, "gas-price", "", "gas price override in wei")
	flags.IntVar(&f.days, "days", constants.DefaultTimeframeDays, "projection timeframe in days")
	flags.IntVar(&f.volume, "volume", constants.DefaultDailyTxVolume, "expected daily transactions")
	_ = cmd.MarkFlagRequired("sample-data")
}

func (f *analysisFlags) params() (params.AnalyzeCostsParams, error) {
	p := params.AnalyzeCostsParams{TimeframeDays: f.days, DailyTxVolume: f.volume}
	var err error
	if f.sampleTarget != "" {
		if p.SampleTarget, err = parseAddress("sample-target", f.sampleTarget); err != nil {
			return p, err
		}
	}
	if p.SampleData, err = parseHex("sample-data", f.sampleData); err != nil {
		return p, err
	}
	if p.GasPriceWei, err = parseWei("gas-price", f.gasPrice); err != nil {
		return p, err
	}
	return p, nil
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var flags analysisFlags
	cmd := &cobra.Command{
		Use:   "analyze <paymaster>",
		Short: "Report paymaster overhead, efficiency scores and cost projections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params()
			if err != nil {
				return err
			}
			if p.Address, err = parseAddress("paymaster", args[0]); err != nil {
				return err
			}
			report, err := a.engine.Costs.AnalyzeCosts(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.render(cmd, report)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var flags analysisFlags
	cmd := &cobra.Command{
		Use:   "compare <paymaster> <paymaster>...",
		Short: "Rank paymasters by efficiency for the same sample call",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params()
			if err != nil {
				return err
			}
			addresses := make([]common.Address, 0, len(args))
			for _, arg := range args {
				address, err := parseAddress("paymaster", arg)
				if err != nil {
					return err
				}
				addresses = append(addresses, address)
			}
			reports, err := a.engine.Costs.ComparePaymasters(cmd.Context(), addresses, p)
			if err != nil {
				return err
			}
			return a.render(cmd, reports)
		},
	}
	flags.register(cmd)
	return cmd
}
