package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd(&app{})

	names := make([]string, 0)
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"estimate", "profile", "classify", "analyze", "compare"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("dump"))
}

func TestParseFlags(t *testing.T) {
	_, err := parseAddress("target", "0x1234")
	assert.Error(t, err)

	address, err := parseOptionalAddress("paymaster", "")
	require.NoError(t, err)
	assert.Nil(t, address)

	data, err := parseHex("data", "0xa9059cbb")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, data)

	_, err = parseHex("data", "a9059cbb")
	assert.Error(t, err)

	wei, err := parseWei("gas-price", "2000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000_000), wei.Int64())

	_, err = parseWei("gas-price", "-5")
	assert.Error(t, err)
}

func TestAnalysisFlags_Params(t *testing.T) {
	flags := analysisFlags{
		sampleTarget: "0x1000000000000000000000000000000000000001",
		sampleData:   "0xa9059cbb",
		days:         7,
		volume:       50,
	}
	p, err := flags.params()
	require.NoError(t, err)
	assert.Equal(t, 7, p.TimeframeDays)
	assert.Equal(t, 50, p.DailyTxVolume)
	assert.Nil(t, p.GasPriceWei)
	assert.Len(t, p.SampleData, 4)
}
