// Package ast holds the statement, expression and type-annotation arenas the
// semantic passes consume. Nodes are addressed by 1-based ids; zero is the
// "absent" id for every id type. Each node stores its kind, span and an index
// into the payload arena of that kind.
package ast
