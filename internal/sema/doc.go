// Package sema hosts semantic checks that run after name resolution. The
// guaranteed-return check proves that every function annotated with a return
// type reaches a return or program exit on every path.
package sema
