package crn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnconj/crn"
	"github.com/katalvlaran/crnconj/matrix"
)

var (
	chainY  = [][]float64{{1, 2, 0}, {2, 1, 3}}
	chainAk = [][]float64{{-1, 0, 0}, {1, -1, 0}, {0, 1, 0}}
)

func TestFromRowsDerivesFlux(t *testing.T) {
	net, err := crn.FromRows(chainY, chainAk)
	require.NoError(t, err)

	assert.Equal(t, 3, net.ComplexCount())
	assert.Equal(t, 2, net.SpeciesCount())
	assert.Equal(t, chainY, net.ComplexMatrix().ToRows())
	assert.Equal(t, chainAk, net.KineticMatrix().ToRows())
	assert.Equal(t, [][]float64{{1, -2, 0}, {-1, 2, 0}}, net.FluxMatrix().ToRows())
	assert.Equal(t, []string{"X1", "X2"}, net.Species())
	assert.Equal(t, []string{"C1", "C2", "C3"}, net.Complexes())
}

func TestAccessorsReturnCopies(t *testing.T) {
	net, err := crn.FromRows(chainY, chainAk)
	require.NoError(t, err)

	y := net.ComplexMatrix()
	require.NoError(t, y.Set(0, 0, 42))
	v, err := net.ComplexMatrix().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	names := net.Species()
	names[0] = "Z"
	assert.Equal(t, "X1", net.Species()[0])
}

func TestDimensionMismatch(t *testing.T) {
	for _, tc := range []struct {
		name string
		y    [][]float64
		ak   [][]float64
	}{
		{"y columns differ from ak rows", [][]float64{{1, 0}}, chainAk},
		{"ak not square", chainY, [][]float64{{-1, 0, 0}, {1, 0, 0}}},
		{"ragged y", [][]float64{{1, 2, 0}, {2, 1}}, chainAk},
		{"ragged ak", chainY, [][]float64{{-1, 0, 0}, {1, -1}, {0, 1, 0}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := crn.FromRows(tc.y, tc.ak)
			require.ErrorIs(t, err, crn.ErrDimensionMismatch)
		})
	}
}

func TestLabels(t *testing.T) {
	net, err := crn.FromRows(chainY, chainAk, crn.WithSpecies("A", "B"), crn.WithComplexes("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, net.Species())
	assert.Equal(t, "A + 2 B", net.FormatComplex(0))
	assert.Equal(t, "3 B", net.FormatComplex(2))

	_, err = crn.FromRows(chainY, chainAk, crn.WithSpecies("A"))
	require.ErrorIs(t, err, crn.ErrDimensionMismatch)

	_, err = crn.FromRows(chainY, chainAk, crn.WithComplexes("a", "a", "b"))
	require.ErrorIs(t, err, crn.ErrDuplicateLabel)
}

func TestNewFromMatrixInterface(t *testing.T) {
	y, err := matrix.FromRows(chainY)
	require.NoError(t, err)
	ak, err := matrix.FromRows(chainAk)
	require.NoError(t, err)

	net, err := crn.New(y, ak)
	require.NoError(t, err)

	// later mutation of the inputs does not leak into the network
	require.NoError(t, y.Set(0, 0, 9))
	v, err := net.ComplexMatrix().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = crn.New(nil, ak)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestEmptyNetworkIsRepresentable(t *testing.T) {
	net, err := crn.FromRows(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, net.ComplexCount())
	assert.Equal(t, 0, net.SpeciesCount())
}

func TestAnalyzeAndReactions(t *testing.T) {
	net, err := crn.FromRows(chainY, chainAk)
	require.NoError(t, err)

	rep, err := net.Analyze()
	require.NoError(t, err)
	assert.False(t, rep.WeaklyReversible)
	assert.Equal(t, 1, rep.Deficiency)

	lines, err := net.Reactions(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"X1 + 2 X2 ->(1) 2 X1 + X2",
		"2 X1 + X2 ->(1) 3 X2",
	}, lines)

	bad, err := matrix.FromRows([][]float64{{0}})
	require.NoError(t, err)
	_, err = net.Reactions(bad)
	require.ErrorIs(t, err, crn.ErrDimensionMismatch)
}
