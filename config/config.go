// Package config loads weakrev run files.
//
// A run file names the network (reaction strings, or explicit Y and Ak
// matrices), the interval [eps, ubound], the solver back-end and an optional
// list of intervals to sweep:
//
//	eps: 0.6666
//	ubound: 20
//	network:
//	  reactions:
//	    - "X1 + 2 X2 ->(1.5) X1"
//	solver:
//	  name: bnb
//	  timeLimit: 30s
//	sweep:
//	  - {eps: 0.5, ubound: 30}
//
// Unknown keys are rejected. Omitted keys keep the values of Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/crnconj/conjugacy"
	"github.com/katalvlaran/crnconj/crn"
	"github.com/katalvlaran/crnconj/reaction"
)

// ErrInvalidConfig is returned by Validate for inconsistent run files.
var ErrInvalidConfig = errors.New("config: invalid run file")

// DefaultSolver is the back-end used when the run file names none.
const DefaultSolver = "bnb"

// Config is one decoded run file.
type Config struct {
	conjugacy.Params `yaml:",inline"`

	Network Network            `yaml:"network"`
	Solver  Solver             `yaml:"solver"`
	Sweep   []conjugacy.Params `yaml:"sweep,omitempty"`
}

// Network describes the input network. Exactly one of Reactions or (Y, Ak)
// must be given; Species and Complexes label the matrix form.
type Network struct {
	Reactions []string    `yaml:"reactions,omitempty"`
	Y         [][]float64 `yaml:"y,omitempty"`
	Ak        [][]float64 `yaml:"ak,omitempty"`
	Species   []string    `yaml:"species,omitempty"`
	Complexes []string    `yaml:"complexes,omitempty"`
}

// Solver selects and tunes the MILP back-end. Zero limits mean "back-end default".
type Solver struct {
	Name      string        `yaml:"name"`
	TimeLimit time.Duration `yaml:"timeLimit,omitempty"`
	NodeLimit int           `yaml:"nodeLimit,omitempty"`
	Tolerance float64       `yaml:"tolerance,omitempty"`
}

// Default returns a run file with the default interval and solver and no network.
func Default() *Config {
	return &Config{
		Params: conjugacy.DefaultParams(),
		Solver: Solver{Name: DefaultSolver},
	}
}

// Load reads and validates the run file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the interval, the sweep list, the solver section and that
// the network is described exactly once.
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for i, p := range c.Sweep {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: sweep[%d]: %w", ErrInvalidConfig, i, err)
		}
	}

	s := c.Solver
	switch {
	case s.Name == "":
		return fmt.Errorf("solver name is empty: %w", ErrInvalidConfig)
	case s.TimeLimit < 0:
		return fmt.Errorf("solver timeLimit %s is negative: %w", s.TimeLimit, ErrInvalidConfig)
	case s.NodeLimit < 0:
		return fmt.Errorf("solver nodeLimit %d is negative: %w", s.NodeLimit, ErrInvalidConfig)
	case s.Tolerance < 0:
		return fmt.Errorf("solver tolerance %g is negative: %w", s.Tolerance, ErrInvalidConfig)
	}

	n := c.Network
	hasReactions := len(n.Reactions) > 0
	hasMatrices := len(n.Y) > 0 || len(n.Ak) > 0
	switch {
	case hasReactions && hasMatrices:
		return fmt.Errorf("network has both reactions and matrices: %w", ErrInvalidConfig)
	case !hasReactions && !hasMatrices:
		return fmt.Errorf("network is empty: %w", ErrInvalidConfig)
	case hasReactions && (len(n.Species) > 0 || len(n.Complexes) > 0):
		return fmt.Errorf("labels are derived from reactions: %w", ErrInvalidConfig)
	}

	return nil
}

// Build returns the crn.Network described by the run file.
func (n Network) Build() (*crn.Network, error) {
	if len(n.Reactions) > 0 {
		return reaction.FromStrings(n.Reactions...)
	}
	var opts []crn.Option
	if len(n.Species) > 0 {
		opts = append(opts, crn.WithSpecies(n.Species...))
	}
	if len(n.Complexes) > 0 {
		opts = append(opts, crn.WithComplexes(n.Complexes...))
	}

	return crn.FromRows(n.Y, n.Ak, opts...)
}

// Intervals returns the sweep list, or the single configured interval when
// the list is empty.
func (c *Config) Intervals() []conjugacy.Params {
	if len(c.Sweep) == 0 {
		return []conjugacy.Params{c.Params}
	}

	return append([]conjugacy.Params(nil), c.Sweep...)
}
