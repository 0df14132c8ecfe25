// Package opparser implements a generic operator-precedence parsing engine.
//
// Rather than following a fixed grammar, the engine interleaves tokenization
// and reduction. Lexers registered per parser state recognize tokens at the
// cursor and push them to the parser. Each token carries a left and a right
// precedence level; when a token arrives, every pending token whose right
// level exceeds the new token's left level is reduced first. Asymmetric levels
// encode associativity, a low right level on an open bracket holds everything
// inside it, and a low left level on a close bracket flushes down to the
// matching open bracket.
//
// Package calc contains the reference instantiation, an arithmetic calculator.
package opparser
