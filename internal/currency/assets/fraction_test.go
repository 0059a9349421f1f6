package assets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in   string
		num  uint64
		den  uint64
		fail bool
	}{
		{in: "0", num: 0, den: 1},
		{in: "1", num: 1, den: 1},
		{in: "0.1", num: 1, den: 10},
		{in: "0.025", num: 25, den: 1000},
		{in: "2.50", num: 25, den: 10},
		{in: ".5", num: 5, den: 10},
		{in: "1.", fail: true},
		{in: "abc", fail: true},
		{in: "1.2.3", fail: true},
		{in: "-0.5", fail: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			f, err := ParseFraction(tc.in)
			if tc.fail {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.num, f.Num)
			require.Equal(t, tc.den, f.Den)
			require.True(t, f.Valid())
		})
	}
}

func TestMulFloor(t *testing.T) {
	f, err := ParseFraction("0.025")
	require.NoError(t, err)

	require.EqualValues(t, 25, f.MulFloor(1000))
	require.EqualValues(t, 0, f.MulFloor(39))
	require.EqualValues(t, 1, f.MulFloor(40))

	// No intermediate overflow on large amounts.
	big, err := ParseFraction("0.5")
	require.NoError(t, err)
	require.EqualValues(t, uint64(1)<<63-1, big.MulFloor(^uint64(0)-1))
}

func TestZeroFraction(t *testing.T) {
	require.True(t, Zero().IsZero())
	require.True(t, Zero().Valid())
	require.Zero(t, Zero().MulFloor(1<<50))
}

func TestFractionString(t *testing.T) {
	f, err := ParseFraction("2.50")
	require.NoError(t, err)
	require.Equal(t, "2.5", f.String())
	require.Equal(t, "3", Fraction{Num: 3, Den: 1}.String())
}
