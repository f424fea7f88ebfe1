// Package supply computes the circulating token supply from the emission
// schedules.
package supply

import (
	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/pkg/errors"
)

// InitialSupply is the amount issued at genesis, in BOS.
const InitialSupply = 500_000_000

// Schedule is a linear emission that starts after StartHeight and pays
// RatePerBlock for Duration blocks.
type Schedule struct {
	StartHeight  uint64
	Duration     uint64
	RatePerBlock float64
}

// Accrual returns the amount emitted by the schedule up to height.
func (s Schedule) Accrual(height uint64) float64 {
	switch {
	case height > s.StartHeight+s.Duration:
		return s.RatePerBlock * float64(s.Duration)
	case height > s.StartHeight:
		return s.RatePerBlock * float64(height-s.StartHeight)
	default:
		return 0
	}
}

// CommonsBudget funds the commons budget from the first block on.
var CommonsBudget = Schedule{
	StartHeight:  1,
	Duration:     36_000_000,
	RatePerBlock: 50,
}

// PF00 schedule parameters. Its start height is not fixed yet and must be
// configured.
const (
	PF00Duration     = 6_307_200
	PF00RatePerBlock = 25.5
)

// Calculator computes supply at a block height. The zero value has no PF00
// start height and fails on every call.
type Calculator struct {
	pf00StartHeight *uint64
}

// NewCalculator returns a calculator. pf00StartHeight may be nil when the
// start height is not configured.
func NewCalculator(pf00StartHeight *uint64) *Calculator {
	c := &Calculator{}
	if pf00StartHeight != nil {
		start := *pf00StartHeight
		c.pf00StartHeight = &start
	}
	return c
}

// PF00 returns the PF00 schedule, or fault.ErrConfig when its start height is
// not configured.
func (c *Calculator) PF00() (Schedule, error) {
	if c == nil || c.pf00StartHeight == nil {
		return Schedule{}, errors.WithMessage(fault.ErrConfig, "PF00 inflation start height is not configured")
	}
	return Schedule{
		StartHeight:  *c.pf00StartHeight,
		Duration:     PF00Duration,
		RatePerBlock: PF00RatePerBlock,
	}, nil
}

// Supply returns InitialSupply plus the accrual of both schedules at height.
func (c *Calculator) Supply(height uint64) (float64, error) {
	pf00, err := c.PF00()
	if err != nil {
		return 0, err
	}
	return InitialSupply + CommonsBudget.Accrual(height) + pf00.Accrual(height), nil
}
