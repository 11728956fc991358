package sema

import "quasicode/internal/ast"

type returnStatus int

const (
	// returnOpen means control can fall through the statement.
	returnOpen returnStatus = iota
	// returnClosed means every execution reaches a return or exit.
	returnClosed
)

type returnChecker struct {
	builder *ast.Builder
}

func (c returnChecker) blockStatus(stmts []ast.StmtID) returnStatus {
	for _, id := range stmts {
		// Statements after a closed one are unreachable and need no analysis.
		if c.returnStatus(id) == returnClosed {
			return returnClosed
		}
	}
	return returnOpen
}

func (c returnChecker) returnStatus(stmtID ast.StmtID) returnStatus {
	if !stmtID.IsValid() || c.builder == nil {
		return returnOpen
	}
	stmt := c.builder.Stmts.Get(stmtID)
	if stmt == nil {
		return returnOpen
	}
	switch stmt.Kind {
	case ast.StmtReturn, ast.StmtExit:
		return returnClosed
	case ast.StmtBlock:
		if block, ok := c.builder.Stmts.Block(stmtID); ok {
			return c.blockStatus(block.Stmts)
		}
		return returnOpen
	case ast.StmtIf:
		ifStmt, ok := c.builder.Stmts.If(stmtID)
		if !ok || !ifStmt.Else.IsValid() {
			return returnOpen
		}
		if c.returnStatus(ifStmt.Then) != returnClosed {
			return returnOpen
		}
		for _, arm := range ifStmt.ElseIfs {
			elseIf, ok := c.builder.Stmts.If(arm)
			if !ok || c.returnStatus(elseIf.Then) != returnClosed {
				return returnOpen
			}
		}
		return c.returnStatus(ifStmt.Else)
	default:
		// Loops are open even when their body returns; the body may not run.
		return returnOpen
	}
}

// CheckReturns reports whether body terminates on every path and invokes
// onViolation exactly once when it does not.
func CheckReturns(builder *ast.Builder, body []ast.StmtID, onViolation func()) bool {
	c := returnChecker{builder: builder}
	if c.blockStatus(body) == returnClosed {
		return true
	}
	if onViolation != nil {
		onViolation()
	}
	return false
}
