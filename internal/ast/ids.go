package ast

type (
	StmtID     uint32
	ExprID     uint32
	TypeExprID uint32
	PayloadID  uint32
)

const (
	NoStmtID     StmtID     = 0
	NoExprID     ExprID     = 0
	NoTypeExprID TypeExprID = 0
	NoPayloadID  PayloadID  = 0
)

func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
func (id TypeExprID) IsValid() bool { return id != NoTypeExprID }
func (id PayloadID) IsValid() bool  { return id != NoPayloadID }
