package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/mocks"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/services"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// plainBytecode contains no printable runs long enough to match a pattern
var plainBytecode = []byte{0x60, 0x80, 0x60, 0x40, 0x52, 0x00}

// probeResponder answers probes whose selector is listed and reverts the rest
func probeResponder(present ...string) func(context.Context, business.CallRequest) ([]byte, error) {
	return func(_ context.Context, call business.CallRequest) ([]byte, error) {
		for _, signature := range present {
			if bytes.HasPrefix(call.Data, helpers.FunctionSelector(signature)) {
				return helpers.EncodeAddressArg(common.HexToAddress("0x3000000000000000000000000000000000000003")), nil
			}
		}
		return nil, business.ErrExecutionReverted
	}
}

func TestPaymasterClassifierService_Classify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		setupMocks     func(oracle *mocks.MockChainOracle)
		wantType       constants.PaymasterType
		wantConfidence int
		wantFeatures   []string
		wantError      bool
		checkProfile   func(t *testing.T, profile *business.PaymasterProfile)
	}{
		{
			name: "address without code is unknown",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return([]byte{}, nil)
			},
			wantType:       constants.PaymasterUnknown,
			wantConfidence: 0,
			wantError:      true,
		},
		{
			name: "code lookup failure is unknown with the error recorded",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(nil, errors.New("dial tcp: connection refused"))
			},
			wantType:       constants.PaymasterUnknown,
			wantConfidence: 0,
			wantError:      true,
		},
		{
			name: "non-zero token getter makes a token paymaster",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(plainBytecode, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder("token()")).AnyTimes()
			},
			wantType:       constants.PaymasterToken,
			wantConfidence: 70,
			wantFeatures:   []string{constants.FeatureTokenPayment},
			checkProfile: func(t *testing.T, profile *business.PaymasterProfile) {
				assert.True(t, profile.Characteristics.IsTokenBased)
				assert.Equal(t, constants.ComplexityLow, profile.GasComplexity)
			},
		},
		{
			name: "token outranks verifying and adds a corroborating feature",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(plainBytecode, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder("token()", "verifyingSigner()")).AnyTimes()
			},
			wantType:       constants.PaymasterToken,
			wantConfidence: 80,
			wantFeatures:   []string{constants.FeatureTokenPayment, constants.FeatureSignatureVerification},
			checkProfile: func(t *testing.T, profile *business.PaymasterProfile) {
				assert.True(t, profile.Characteristics.RequiresSignature)
				assert.Contains(t, profile.SubTypes, string(constants.PaymasterVerifying))
				assert.Equal(t, constants.ComplexityMedium, profile.GasComplexity)
			},
		},
		{
			name: "pattern-only evidence yields lower confidence",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				code := append(append([]byte{}, plainBytecode...), []byte("Paymaster: sender not in whitelist")...)
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(code, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder()).AnyTimes()
			},
			wantType:       constants.PaymasterConditional,
			wantConfidence: 50,
			wantFeatures:   []string{constants.FeatureWhitelist},
			checkProfile: func(t *testing.T, profile *business.PaymasterProfile) {
				assert.True(t, profile.Characteristics.HasWhitelist)
			},
		},
		{
			name: "entry point deposit alone keeps a sponsorship paymaster",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				code := append(append([]byte{0x63}, helpers.FunctionSelector("getDeposit()")...), plainBytecode...)
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(code, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder("getDeposit()")).AnyTimes()
			},
			wantType:       constants.PaymasterSponsorship,
			wantConfidence: 40,
			wantFeatures:   []string{constants.FeatureDepositTracking},
			checkProfile: func(t *testing.T, profile *business.PaymasterProfile) {
				assert.True(t, profile.Characteristics.HasDepositTracking)
				assert.Empty(t, profile.SubTypes)
			},
		},
		{
			name: "per-user deposit ledger makes a deposit paymaster",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(plainBytecode, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder("deposits(address)", "getDeposit()")).AnyTimes()
			},
			wantType:       constants.PaymasterDeposit,
			wantConfidence: 70,
			wantFeatures:   []string{constants.FeatureDepositTracking},
		},
		{
			name: "timestamp checks mark a conditional paymaster",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				code := append(append([]byte{}, plainBytecode...), []byte("block timestamp out of range")...)
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(code, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder()).AnyTimes()
			},
			wantType:       constants.PaymasterConditional,
			wantConfidence: 50,
			wantFeatures:   []string{constants.FeatureTimeWindow},
			checkProfile: func(t *testing.T, profile *business.PaymasterProfile) {
				assert.True(t, profile.Characteristics.HasTimeConditions)
			},
		},
		{
			name: "no evidence defaults to sponsorship",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(plainBytecode, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder()).AnyTimes()
			},
			wantType:       constants.PaymasterSponsorship,
			wantConfidence: 30,
		},
		{
			name: "unanswered probes lower sponsorship confidence",
			setupMocks: func(oracle *mocks.MockChainOracle) {
				oracle.EXPECT().GetCode(ctx, testPaymaster).Return(plainBytecode, nil)
				oracle.EXPECT().StaticCall(ctx, gomock.Any()).Return(nil, errors.New("read: connection reset by peer")).AnyTimes()
			},
			wantType:       constants.PaymasterSponsorship,
			wantConfidence: 0,
			checkProfile: func(t *testing.T, profile *business.PaymasterProfile) {
				for _, signal := range profile.Signals {
					if signal.Name == "rate_limit" || signal.Name == "price_oracle" {
						continue
					}
					assert.Equal(t, business.SignalUnknown, signal.Probe, signal.Name)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOracle := mocks.NewMockChainOracleForTest(t)
			tt.setupMocks(mockOracle)
			service := services.NewPaymasterClassifierService(mockOracle, nil, services.DefaultCacheOptions(), nil)

			profile := service.Classify(ctx, testPaymaster)
			require.NotNil(t, profile)
			assert.Equal(t, testPaymaster, profile.Address)
			assert.Equal(t, tt.wantType, profile.PrimaryType)
			assert.Equal(t, tt.wantConfidence, profile.Confidence)
			if tt.wantError {
				assert.NotEmpty(t, profile.Error)
			} else {
				assert.Empty(t, profile.Error)
			}
			if tt.wantFeatures != nil {
				assert.ElementsMatch(t, tt.wantFeatures, profile.Features)
			}
			if tt.checkProfile != nil {
				tt.checkProfile(t, profile)
			}
		})
	}
}

func TestPaymasterClassifierService_CustomSignals(t *testing.T) {
	ctx := context.Background()
	mockOracle := mocks.NewMockChainOracleForTest(t)
	mockOracle.EXPECT().GetCode(ctx, testPaymaster).Return([]byte("..staking pool.."), nil)

	signals := []services.PaymasterSignal{{
		Name:           "stake_marker",
		Archetype:      constants.PaymasterStaking,
		Patterns:       []string{"staking pool"},
		Feature:        constants.FeatureStakingLedger,
		Characteristic: func(c *business.PaymasterCharacteristics) { c.HasStaking = true },
	}}
	service := services.NewPaymasterClassifierService(mockOracle, signals, services.DefaultCacheOptions(), nil)

	profile := service.Classify(ctx, testPaymaster)
	assert.Equal(t, constants.PaymasterStaking, profile.PrimaryType)
	assert.True(t, profile.Characteristics.HasStaking)
	require.Len(t, profile.Signals, 1)
	assert.True(t, profile.Signals[0].PatternMatch)
	assert.Equal(t, business.SignalAbsent, profile.Signals[0].Probe)
}

func TestPaymasterClassifierService_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("profiles are computed once per address", func(t *testing.T) {
		mockOracle := mocks.NewMockChainOracleForTest(t)
		mockOracle.EXPECT().GetCode(ctx, testPaymaster).Return(plainBytecode, nil).Times(1)
		mockOracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder("token()")).AnyTimes()
		service := services.NewPaymasterClassifierService(mockOracle, nil, services.DefaultCacheOptions(), nil)

		first := service.Classify(ctx, testPaymaster)
		first.Features = append(first.Features, "mutated")

		second := service.Classify(ctx, testPaymaster)
		assert.Equal(t, constants.PaymasterToken, second.PrimaryType)
		assert.NotContains(t, second.Features, "mutated")
		assert.Equal(t, int64(1), service.CacheStats().Hits)
	})

	t.Run("connectivity failures are retried", func(t *testing.T) {
		mockOracle := mocks.NewMockChainOracleForTest(t)
		mockOracle.EXPECT().GetCode(ctx, testPaymaster).Return(nil, errors.New("timeout")).Times(2)
		service := services.NewPaymasterClassifierService(mockOracle, nil, services.DefaultCacheOptions(), nil)

		service.Classify(ctx, testPaymaster)
		profile := service.Classify(ctx, testPaymaster)
		assert.Equal(t, constants.PaymasterUnknown, profile.PrimaryType)
	})
}

func TestPaymasterClassifierService_ERC4337SubType(t *testing.T) {
	ctx := context.Background()
	selector := helpers.FunctionSelector(constants.ValidatePaymasterUserOpSignature)
	code := append([]byte{0x60, 0x00, 0x35, 0x63}, selector...)

	mockOracle := mocks.NewMockChainOracleForTest(t)
	mockOracle.EXPECT().GetCode(ctx, testPaymaster).Return(code, nil)
	mockOracle.EXPECT().StaticCall(ctx, gomock.Any()).DoAndReturn(probeResponder()).AnyTimes()
	service := services.NewPaymasterClassifierService(mockOracle, nil, services.DefaultCacheOptions(), nil)

	profile := service.Classify(ctx, testPaymaster)
	assert.Contains(t, profile.SubTypes, constants.SubTypeERC4337)
}
