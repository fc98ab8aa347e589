// Package reaction parses human-readable reaction strings into a crn.Network.
//
// Grammar (whitespace is insignificant around tokens):
//
//	reaction := complex arrow complex
//	arrow    := "->" [ "(" rate ")" ] | "<->" [ "(" rate "," rate ")" ]
//	complex  := "0" | term { "+" term }
//	term     := [ coef [ "*" ] ] species
//
// Examples:
//
//	"X1 + 2 X2 ->(1.5) X1"
//	"A <->(1, 0.5) 2 B"
//	"0 -> X"
//
// Rates default to 1. Species are numbered in order of first appearance, and
// so are complexes (reactant before product). A reaction j→i with rate k adds
// k to Ak[i][j] and subtracts k from Ak[j][j], so every column of Ak sums to zero.
//
// Errors:
//
//   - ErrSyntax   malformed reaction, complex or term.
//   - ErrBadRate  rate that is not a positive finite number.
package reaction
