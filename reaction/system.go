package reaction

import (
	"fmt"

	"github.com/katalvlaran/crnconj/crn"
)

// System is a parsed set of reactions with indexed species and complexes.
type System struct {
	Species   []string
	Complexes []Complex
	Reactions []Reaction

	speciesIdx map[string]int
	complexIdx map[string]int
}

// ParseAll parses every line and indexes species and complexes in order of
// first appearance. Blank lines and lines starting with "#" are skipped.
func ParseAll(lines []string) (*System, error) {
	s := &System{
		speciesIdx: make(map[string]int),
		complexIdx: make(map[string]int),
	}
	for i, line := range lines {
		if isBlankOrComment(line) {
			continue
		}
		rs, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		for _, r := range rs {
			s.addComplex(r.Reactant)
			s.addComplex(r.Product)
			s.Reactions = append(s.Reactions, r)
		}
	}
	if len(s.Reactions) == 0 {
		return nil, fmt.Errorf("no reactions: %w", ErrSyntax)
	}

	return s, nil
}

func isBlankOrComment(line string) bool {
	for _, r := range line {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		case '#':
			return true
		default:
			return false
		}
	}

	return true
}

// addComplex registers c and its species if they are new.
func (s *System) addComplex(c Complex) {
	for _, t := range c {
		if _, ok := s.speciesIdx[t.Species]; !ok {
			s.speciesIdx[t.Species] = len(s.Species)
			s.Species = append(s.Species, t.Species)
		}
	}
	key := c.String()
	if _, ok := s.complexIdx[key]; !ok {
		s.complexIdx[key] = len(s.Complexes)
		s.Complexes = append(s.Complexes, c)
	}
}

// Matrices returns the complex matrix Y (n×m) and the kinetic matrix Ak (m×m).
func (s *System) Matrices() (y, ak [][]float64) {
	n, m := len(s.Species), len(s.Complexes)
	y = make([][]float64, n)
	for i := range y {
		y[i] = make([]float64, m)
	}
	for j, c := range s.Complexes {
		for _, t := range c {
			y[s.speciesIdx[t.Species]][j] = t.Coef
		}
	}

	ak = make([][]float64, m)
	for i := range ak {
		ak[i] = make([]float64, m)
	}
	var from, to int
	for _, r := range s.Reactions {
		from = s.complexIdx[r.Reactant.String()]
		to = s.complexIdx[r.Product.String()]
		if from == to {
			continue
		}
		ak[to][from] += r.Rate
		ak[from][from] -= r.Rate
	}

	return y, ak
}

// Network converts the system into a crn.Network labelled with the parsed
// species names and canonical complex strings.
func (s *System) Network() (*crn.Network, error) {
	y, ak := s.Matrices()
	labels := make([]string, len(s.Complexes))
	for i, c := range s.Complexes {
		labels[i] = c.String()
	}

	return crn.FromRows(y, ak, crn.WithSpecies(s.Species...), crn.WithComplexes(labels...))
}

// FromStrings parses reaction strings straight into a crn.Network.
func FromStrings(lines ...string) (*crn.Network, error) {
	s, err := ParseAll(lines)
	if err != nil {
		return nil, err
	}

	return s.Network()
}
