package reaction

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrSyntax indicates a malformed reaction string.
	ErrSyntax = errors.New("reaction: syntax error")

	// ErrBadRate indicates a rate constant that is not positive and finite.
	ErrBadRate = errors.New("reaction: rate must be a positive finite number")
)

const (
	arrowForward    = "->"
	arrowReversible = "<->"
	emptyComplex    = "0"
	defaultRate     = 1.0
)

var (
	// arrowRe captures "<->" or "->" and an optional parenthesised rate list.
	arrowRe = regexp.MustCompile(`(<->|->)\s*(?:\(([^)]*)\))?`)

	// termRe captures an optional coefficient and a species identifier.
	termRe = regexp.MustCompile(`^(?:(\d+(?:\.\d*)?|\.\d+)\s*\*?\s*)?([A-Za-z_][A-Za-z0-9_]*)$`)
)

// Term is one species with its stoichiometric coefficient inside a complex.
type Term struct {
	Species string
	Coef    float64
}

// Complex is a multiset of species, kept sorted by species name.
type Complex []Term

// String renders the complex canonically, e.g. "X1 + 2 X2"; the empty complex is "0".
func (c Complex) String() string {
	if len(c) == 0 {
		return emptyComplex
	}
	parts := make([]string, len(c))
	for i, t := range c {
		if t.Coef == 1 {
			parts[i] = t.Species
		} else {
			parts[i] = fmt.Sprintf("%g %s", t.Coef, t.Species)
		}
	}

	return strings.Join(parts, " + ")
}

// Reaction is a single irreversible reaction Reactant → Product.
type Reaction struct {
	Reactant Complex
	Product  Complex
	Rate     float64
}

// String renders the reaction as "lhs ->(rate) rhs".
func (r Reaction) String() string {
	return fmt.Sprintf("%s ->(%g) %s", r.Reactant, r.Rate, r.Product)
}

// Parse parses one reaction string. A reversible arrow yields two reactions,
// the forward one first.
func Parse(line string) ([]Reaction, error) {
	all := arrowRe.FindAllStringSubmatchIndex(line, -1)
	switch len(all) {
	case 0:
		return nil, fmt.Errorf("%q: missing arrow: %w", line, ErrSyntax)
	case 1:
	default:
		return nil, fmt.Errorf("%q: more than one arrow: %w", line, ErrSyntax)
	}
	loc := all[0]

	arrow := line[loc[2]:loc[3]]
	rateText := ""
	hasRate := loc[4] >= 0
	if hasRate {
		rateText = line[loc[4]:loc[5]]
	}

	lhs, err := parseComplex(line[:loc[0]])
	if err != nil {
		return nil, fmt.Errorf("%q: reactant: %w", line, err)
	}
	rhs, err := parseComplex(line[loc[1]:])
	if err != nil {
		return nil, fmt.Errorf("%q: product: %w", line, err)
	}

	switch arrow {
	case arrowForward:
		k := defaultRate
		if hasRate {
			if k, err = parseRate(rateText); err != nil {
				return nil, fmt.Errorf("%q: %w", line, err)
			}
		}
		return []Reaction{{Reactant: lhs, Product: rhs, Rate: k}}, nil
	default:
		kf, kb := defaultRate, defaultRate
		if hasRate {
			fields := strings.Split(rateText, ",")
			if len(fields) != 2 {
				return nil, fmt.Errorf("%q: reversible arrow needs two rates: %w", line, ErrSyntax)
			}
			if kf, err = parseRate(fields[0]); err != nil {
				return nil, fmt.Errorf("%q: forward: %w", line, err)
			}
			if kb, err = parseRate(fields[1]); err != nil {
				return nil, fmt.Errorf("%q: backward: %w", line, err)
			}
		}
		return []Reaction{
			{Reactant: lhs, Product: rhs, Rate: kf},
			{Reactant: rhs, Product: lhs, Rate: kb},
		}, nil
	}
}

// parseRate parses a positive finite rate constant.
func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	k, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("rate %q: %w", s, ErrBadRate)
	}
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return 0, fmt.Errorf("rate %q: %w", s, ErrBadRate)
	}

	return k, nil
}

// parseComplex parses "0" or a "+"-separated list of terms. Repeated species
// are merged; the result is sorted by species name.
func parseComplex(s string) (Complex, error) {
	s = strings.TrimSpace(s)
	if s == emptyComplex {
		return Complex{}, nil
	}
	if s == "" {
		return nil, fmt.Errorf("empty complex (use %q): %w", emptyComplex, ErrSyntax)
	}

	coefs := make(map[string]float64)
	for _, raw := range strings.Split(s, "+") {
		term := strings.TrimSpace(raw)
		mt := termRe.FindStringSubmatch(term)
		if mt == nil {
			return nil, fmt.Errorf("term %q: %w", term, ErrSyntax)
		}
		c := 1.0
		if mt[1] != "" {
			v, err := strconv.ParseFloat(mt[1], 64)
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("coefficient %q: %w", mt[1], ErrSyntax)
			}
			c = v
		}
		coefs[mt[2]] += c
	}

	out := make(Complex, 0, len(coefs))
	for sp, c := range coefs {
		out = append(out, Term{Species: sp, Coef: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Species < out[j].Species })

	return out, nil
}
