package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnconj/config"
	"github.com/katalvlaran/crnconj/conjugacy"
)

const reactionsFile = `
eps: 0.5
ubound: 30
network:
  reactions:
    - "X1 + 2 X2 -> 2 X1 + X2"
    - "2 X1 + X2 -> 3 X2"
solver:
  name: bnb
  timeLimit: 45s
  nodeLimit: 1000
sweep:
  - {eps: 0.6666, ubound: 20}
  - {eps: 1, ubound: 10}
`

func TestParseReactions(t *testing.T) {
	c, err := config.Parse([]byte(reactionsFile))
	require.NoError(t, err)

	assert.Equal(t, conjugacy.Params{Eps: 0.5, UBound: 30}, c.Params)
	assert.Equal(t, config.Solver{Name: "bnb", TimeLimit: 45 * time.Second, NodeLimit: 1000}, c.Solver)
	assert.Equal(t, []conjugacy.Params{{Eps: 0.6666, UBound: 20}, {Eps: 1, UBound: 10}}, c.Intervals())

	net, err := c.Network.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, net.SpeciesCount())
	assert.Equal(t, 3, net.ComplexCount())
	assert.Equal(t, [][]float64{{1, 2, 0}, {2, 1, 3}}, net.ComplexMatrix().ToRows())
}

func TestParseMatricesKeepsDefaults(t *testing.T) {
	c, err := config.Parse([]byte(`
network:
  y: [[1, 0], [0, 1]]
  ak: [[-1, 1], [1, -1]]
  species: [A, B]
`))
	require.NoError(t, err)
	assert.Equal(t, conjugacy.DefaultParams(), c.Params)
	assert.Equal(t, config.DefaultSolver, c.Solver.Name)
	assert.Equal(t, []conjugacy.Params{conjugacy.DefaultParams()}, c.Intervals())

	net, err := c.Network.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, net.Species())
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":    "network: {reactions: [\"A -> B\"]}\ncolour: red\n",
		"empty":          "",
		"no network":     "eps: 1\nubound: 2\n",
		"both forms":     "network: {reactions: [\"A -> B\"], y: [[1]], ak: [[0]]}\n",
		"bad interval":   "eps: 3\nubound: 2\nnetwork: {reactions: [\"A -> B\"]}\n",
		"bad sweep":      "network: {reactions: [\"A -> B\"]}\nsweep: [{eps: 0, ubound: 2}]\n",
		"negative limit": "network: {reactions: [\"A -> B\"]}\nsolver: {name: bnb, nodeLimit: -1}\n",
		"labels on rxns": "network: {reactions: [\"A -> B\"], species: [A, B]}\n",
		"malformed yaml": "network: [\n",
		"empty solver":   "network: {reactions: [\"A -> B\"]}\nsolver: {name: \"\"}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(reactionsFile), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.Eps)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
