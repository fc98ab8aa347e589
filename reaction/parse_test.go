package reaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnconj/reaction"
)

// johnston is the four-reaction network from Johnston, Siegel and Szederkényi.
var johnston = []string{
	"X1 + 2 X2 ->(1.5) X1",
	"2 X1 + X2 ->(1) 3 X2",
	"X1 + 3 X2 ->(1) X1 + X2",
	"X1 + X2 ->(1) 3 X1 + X2",
}

func TestParseForward(t *testing.T) {
	rs, err := reaction.Parse("X1 + 2 X2 ->(1.5) X1")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, reaction.Complex{{Species: "X1", Coef: 1}, {Species: "X2", Coef: 2}}, rs[0].Reactant)
	assert.Equal(t, reaction.Complex{{Species: "X1", Coef: 1}}, rs[0].Product)
	assert.Equal(t, 1.5, rs[0].Rate)
	assert.Equal(t, "X1 + 2 X2 ->(1.5) X1", rs[0].String())
}

func TestParseVariants(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{"A -> B", []string{"A ->(1) B"}},
		{"A<->(2,0.5)2B", []string{"A ->(2) 2 B", "2 B ->(0.5) A"}},
		{"A <-> B", []string{"A ->(1) B", "B ->(1) A"}},
		{"0 ->(3) X", []string{"0 ->(3) X"}},
		{"X + X -> 2*Y", []string{"2 X ->(1) 2 Y"}},
		{"B + A -> 0", []string{"A + B ->(1) 0"}},
	} {
		t.Run(tc.in, func(t *testing.T) {
			rs, err := reaction.Parse(tc.in)
			require.NoError(t, err)
			got := make([]string, len(rs))
			for i, r := range rs {
				got[i] = r.String()
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want error
	}{
		{"A B", reaction.ErrSyntax},
		{"A -> B -> C", reaction.ErrSyntax},
		{" -> B", reaction.ErrSyntax},
		{"A + -> B", reaction.ErrSyntax},
		{"2 -> B", reaction.ErrSyntax},
		{"A <->(1) B", reaction.ErrSyntax},
		{"A ->(0) B", reaction.ErrBadRate},
		{"A ->(-1) B", reaction.ErrBadRate},
		{"A ->(fast) B", reaction.ErrBadRate},
		{"A <->(1,inf) B", reaction.ErrBadRate},
	} {
		t.Run(tc.in, func(t *testing.T) {
			_, err := reaction.Parse(tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestJohnstonMatrices(t *testing.T) {
	sys, err := reaction.ParseAll(johnston)
	require.NoError(t, err)
	require.Equal(t, []string{"X1", "X2"}, sys.Species)
	require.Len(t, sys.Complexes, 7)

	y, ak := sys.Matrices()
	assert.Equal(t, [][]float64{
		{1, 1, 2, 0, 1, 1, 3},
		{2, 0, 1, 3, 3, 1, 1},
	}, y)
	assert.Equal(t, [][]float64{
		{-1.5, 0, 0, 0, 0, 0, 0},
		{1.5, 0, 0, 0, 0, 0, 0},
		{0, 0, -1, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, -1, 0, 0},
		{0, 0, 0, 0, 1, -1, 0},
		{0, 0, 0, 0, 0, 1, 0},
	}, ak)
}

func TestFromStringsBuildsNetwork(t *testing.T) {
	net, err := reaction.FromStrings(append([]string{"# comment", ""}, johnston...)...)
	require.NoError(t, err)
	assert.Equal(t, 7, net.ComplexCount())
	assert.Equal(t, 2, net.SpeciesCount())
	assert.Equal(t, "X1 + 2 X2", net.Complexes()[0])

	lines, err := net.Reactions(nil)
	require.NoError(t, err)
	assert.Equal(t, johnston, lines)

	_, err = reaction.FromStrings("# nothing here")
	require.ErrorIs(t, err, reaction.ErrSyntax)
}
