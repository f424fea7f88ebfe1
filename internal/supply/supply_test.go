package supply

import (
	"testing"

	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonsBudgetAccrual(t *testing.T) {
	cases := []struct {
		name   string
		height uint64
		want   float64
	}{
		{name: "genesis", height: 0, want: 0},
		{name: "start height", height: 1, want: 0},
		{name: "first paid block", height: 2, want: 50},
		{name: "halfway", height: 18_000_001, want: 900_000_000},
		{name: "last block", height: 36_000_001, want: 1_800_000_000},
		{name: "capped", height: 36_000_002, want: 1_800_000_000},
		{name: "far future", height: 1 << 40, want: 1_800_000_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CommonsBudget.Accrual(tc.height))
		})
	}
}

func TestPF00Accrual(t *testing.T) {
	start := uint64(1000)
	c := NewCalculator(&start)
	pf00, err := c.PF00()
	require.NoError(t, err)

	assert.Equal(t, 0.0, pf00.Accrual(1000))
	assert.Equal(t, 25.5, pf00.Accrual(1001))
	assert.Equal(t, 25.5*10, pf00.Accrual(1010))
	assert.Equal(t, 25.5*PF00Duration, pf00.Accrual(1000+PF00Duration))
	assert.Equal(t, 160_833_600.0, pf00.Accrual(1000+PF00Duration+500))
}

func TestSupply(t *testing.T) {
	start := uint64(20_000_000)
	c := NewCalculator(&start)

	cases := []struct {
		name   string
		height uint64
		want   float64
	}{
		{name: "height zero is the base", height: 0, want: InitialSupply},
		{name: "before PF00", height: 18_000_001, want: InitialSupply + 900_000_000},
		{name: "both running", height: 20_000_101, want: InitialSupply + 50*20_000_100 + 25.5*100},
		{name: "both capped", height: 40_000_000, want: InitialSupply + 1_800_000_000 + 160_833_600},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Supply(tc.height)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSupplyRequiresPF00StartHeight(t *testing.T) {
	for _, c := range []*Calculator{nil, {}, NewCalculator(nil)} {
		_, err := c.Supply(100)
		assert.ErrorIs(t, err, fault.ErrConfig)
		assert.Contains(t, err.Error(), "PF00 inflation start height")
	}
}

func TestNewCalculatorCopiesStartHeight(t *testing.T) {
	start := uint64(10)
	c := NewCalculator(&start)
	start = 1_000_000

	pf00, err := c.PF00()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pf00.StartHeight)
}
