// Package fuzztests houses Go fuzz harnesses for the analysis pipeline
// (program document -> loader -> resolver -> return checker). They guard
// against panics and hangs on arbitrary documents.
package fuzztests
