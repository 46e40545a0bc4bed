// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package splits generates the full cross-tabulation of grouping questions.
//
// Every grouping question contributes the option set {each response group}
// plus a trailing wildcard. The Cartesian product of those option sets, in
// question order, yields one Split per combination; a question with k
// response groups therefore multiplies the split count by k+1.
//
// # Index Space
//
// Split indices are a mixed-radix number whose first digit belongs to the
// first grouping question (the outermost, slowest-varying loop) and whose
// last digit belongs to the last grouping question (the innermost loop).
// Within each digit, response groups come first in configured order and the
// wildcard is the final option. For party {Dem, Rep} × age {Young, Old}:
//
//	0 Dem×Young  1 Dem×Old  2 Dem×All
//	3 Rep×Young  4 Rep×Old  5 Rep×All
//	6 All×Young  7 All×Old  8 All×All
//
// The array is never re-sorted after generation; deltas, diffs and point
// identities all address splits by this index.
//
// # Basis Splits
//
// A split with no wildcard is a basis split and is its own sole basis. Every
// other split lists, in ascending order, the indices of the basis splits
// whose non-wildcard groups agree with its own.
package splits
