package pbesynth

import (
	"fmt"
	"strings"
)

// ExprKind tags the four Expr variants of spec §3.
type ExprKind int

const (
	ExprConst ExprKind = iota
	ExprVar
	ExprOp1
	ExprOp2
	ExprOp3
)

// Expr is a tagged tree: Const(c), Var(i), Op1(op, a), Op2(op, a, b),
// Op3(op, a, b, c). Each operator node carries the Operator identity, which
// encodes its surface name, unit cost, and evaluation rule (operators.go).
type Expr struct {
	Kind     ExprKind
	Op       *Operator
	ConstVal Value // only meaningful when Kind == ExprConst
	VarIndex int   // only meaningful when Kind == ExprVar
	A, B, C  *Expr

	cost     int
	costOnce bool
}

// NewConst builds a Const leaf.
func NewConst(v Value) *Expr {
	return &Expr{Kind: ExprConst, ConstVal: v}
}

// NewVar builds a Var leaf referencing input column i.
func NewVar(i int) *Expr {
	return &Expr{Kind: ExprVar, VarIndex: i}
}

// NewOp1 builds a unary operator application.
func NewOp1(op *Operator, a *Expr) *Expr {
	return &Expr{Kind: ExprOp1, Op: op, A: a}
}

// NewOp2 builds a binary operator application.
func NewOp2(op *Operator, a, b *Expr) *Expr {
	return &Expr{Kind: ExprOp2, Op: op, A: a, B: b}
}

// NewOp3 builds a ternary operator application.
func NewOp3(op *Operator, a, b, c *Expr) *Expr {
	return &Expr{Kind: ExprOp3, Op: op, A: a, B: b, C: c}
}

// Cost is the sum of operator unit costs plus 1 per leaf (spec §3).
// Memoized since the same sub-expression is reused across many callers once
// adopted into all-eq.
func (e *Expr) Cost() int {
	if e.costOnce {
		return e.cost
	}
	var c int
	switch e.Kind {
	case ExprConst, ExprVar:
		c = 1
	case ExprOp1:
		c = e.Op.Cost + e.A.Cost()
	case ExprOp2:
		c = e.Op.Cost + e.A.Cost() + e.B.Cost()
	case ExprOp3:
		c = e.Op.Cost + e.A.Cost() + e.B.Cost() + e.C.Cost()
	}
	e.cost = c
	e.costOnce = true
	return c
}

// String renders the expression using the operator's surface name (spec §6
// Engine outputs: "a caller can render back to the grammar's surface
// syntax using the operator names").
func (e *Expr) String() string {
	switch e.Kind {
	case ExprConst:
		return e.ConstVal.scalarString()
	case ExprVar:
		return fmt.Sprintf("x%d", e.VarIndex)
	case ExprOp1:
		return fmt.Sprintf("%s(%s)", e.Op.Name, e.A)
	case ExprOp2:
		return fmt.Sprintf("%s(%s, %s)", e.Op.Name, e.A, e.B)
	case ExprOp3:
		return fmt.Sprintf("%s(%s, %s, %s)", e.Op.Name, e.A, e.B, e.C)
	default:
		return "<invalid-expr>"
	}
}

// scalarString renders a single-row constant for display; only used by
// Expr.String on Const leaves built from a broadcast scalar.
func (v Value) scalarString() string {
	if v.Len() == 0 {
		return "<empty>"
	}
	switch v.Ty {
	case TypeInt:
		return fmt.Sprintf("%d", v.Ints[0])
	case TypeBool:
		return fmt.Sprintf("%v", v.Bools[0])
	case TypeStr:
		return fmt.Sprintf("%q", v.Strs[0])
	case TypeFloat:
		return fmt.Sprintf("%g", v.Floats[0])
	default:
		var b strings.Builder
		b.WriteString(v.String())
		return b.String()
	}
}

// ExprValue pairs an adopted expression with the Value it evaluates to on
// the example vector; this is the (Expr, Value) unit offered to Data and
// stored in size buckets.
type ExprValue struct {
	Expr  *Expr
	Value Value
}
