package score

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTotalOrder checks the edge cases where mate-ply comparison is easy
// to get backwards, plus the general banding invariant.
func TestTotalOrder(t *testing.T) {
	assert.True(t, Less(MinusInf, Mate(-3)), "MinusInf < Mate(-3): a slow loss still beats the window floor")
	assert.True(t, Less(Mate(0), Mate(-1)), "Mate(0) < Mate(-1): mated now is worse than mated in one")
	assert.True(t, Less(Mate(-1), Mate(-3)), "Mate(-1) < Mate(-3): the slower loss is the better score")
	assert.True(t, Less(Mate(0), Cp(-30000)), "Mate(0) < any Cp")
	assert.True(t, Less(Cp(30000), Mate(1)), "Cp(30000) < Mate(1)")
	assert.True(t, Less(Mate(3), Mate(1)), "Mate(3) < Mate(1): faster win ranks higher, so smaller v sorts higher")
	assert.True(t, Less(Mate(3), PlusInf), "Mate(3) < PlusInf")
}

func TestOrderIsTotal(t *testing.T) {
	vals := []Score{
		MinusInf, Mate(-1), Mate(-5), Mate(0), Cp(-100), Cp(0), Cp(100), Mate(5), Mate(1), PlusInf,
	}
	sorted := append([]Score(nil), vals...)
	sort.Slice(sorted, func(i, j int) bool { return Less(sorted[i], sorted[j]) })
	for i := 1; i < len(sorted); i++ {
		assert.False(t, Less(sorted[i], sorted[i-1]), "sort produced a non-monotonic order")
	}
}

func TestNegInvolution(t *testing.T) {
	for _, s := range []Score{Cp(37), Cp(-37), Cp(0), Mate(4), Mate(-4), PlusInf, MinusInf} {
		require.True(t, s.Neg().Neg().Equal(s), "Neg should be involutive for %v", s)
	}
}

func TestStepOnCp(t *testing.T) {
	// Step on a Cp score is plain negation, and is therefore involutive.
	s := Cp(42)
	assert.True(t, s.Step().Step().Equal(s))
}

func TestStepOnMate(t *testing.T) {
	assert.Equal(t, Mate(-2), Mate(1).Step(), "mate in 1 becomes mated in 2 when viewed one ply up")
	assert.Equal(t, Mate(1), Mate(0).Step(), "stepping a just-mated score one ply up gives the mating side Mate(1)")
	assert.Equal(t, Mate(-4), Mate(3).Step())
	assert.Equal(t, Mate(4), Mate(-3).Step())
}

func TestUCIRendering(t *testing.T) {
	assert.Equal(t, "cp 37", Cp(37).UCI())
	assert.Equal(t, "mate 0", Mate(0).UCI())
	assert.Equal(t, "mate 1", Mate(1).UCI())
	assert.Equal(t, "mate -1", Mate(-1).UCI())
}
