package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountString(t *testing.T) {
	cases := []struct {
		amount Amount
		want   string
	}{
		{0, "0.0000000"},
		{1, "0.0000001"},
		{10000, "0.0010000"},
		{GONPerBOS, "1.0000000"},
		{1234567890123, "123456.7890123"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.amount.String())
		})
	}
}
