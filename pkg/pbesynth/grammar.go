package pbesynth

// ProdRuleKind tags the three production-rule shapes of spec §3: a grammar
// non-terminal's rules are constants, input-variable references, or
// operator applications naming one or more child non-terminals by index.
type ProdRuleKind int

const (
	RuleConst ProdRuleKind = iota
	RuleVar
	RuleOp
)

// ProdRule is one production rule of a NonTerminal.
type ProdRule struct {
	Kind ProdRuleKind

	// RuleConst
	ConstTy   Type
	ConstScal interface{}

	// RuleVar
	VarIndex int

	// RuleOp
	Op       *Operator
	Children [3]int // child non-terminal indices, length given by Op.Arity
}

// ConstRule builds a Const production rule.
func ConstRule(ty Type, scalar interface{}) ProdRule {
	return ProdRule{Kind: RuleConst, ConstTy: ty, ConstScal: scalar}
}

// VarRule builds a Var production rule referencing input column i.
func VarRule(i int) ProdRule {
	return ProdRule{Kind: RuleVar, VarIndex: i}
}

// Op1Rule builds a unary-operator production rule over child nt a.
func Op1Rule(op *Operator, a int) ProdRule {
	return ProdRule{Kind: RuleOp, Op: op, Children: [3]int{a, 0, 0}}
}

// Op2Rule builds a binary-operator production rule over children a, b.
func Op2Rule(op *Operator, a, b int) ProdRule {
	return ProdRule{Kind: RuleOp, Op: op, Children: [3]int{a, b, 0}}
}

// Op3Rule builds a ternary-operator production rule over children a, b, c.
func Op3Rule(op *Operator, a, b, c int) ProdRule {
	return ProdRule{Kind: RuleOp, Op: op, Children: [3]int{a, b, c}}
}

// NonTerminal is one entry in the grammar's ordered non-terminal list
// (spec §3). Non-terminal 0 is always the start symbol; its Type equals
// the target output type.
type NonTerminal struct {
	Name   string
	Type   Type
	Rules  []ProdRule
	Config NTConfig
}

// GetOp2 returns the first binary rule for the named operator, mirroring
// original_source/src/backward/mod.rs's Cfg::get_op2 used to detect
// concat/join shape when wiring a StrDeducer from grammar structure.
func (nt *NonTerminal) GetOp2(name string) (ProdRule, bool) {
	for _, r := range nt.Rules {
		if r.Kind == RuleOp && r.Op.Arity == Arity2 && r.Op.Name == name {
			return r, true
		}
	}
	return ProdRule{}, false
}

// GetOp3 returns the first ternary rule for the named operator.
func (nt *NonTerminal) GetOp3(name string) (ProdRule, bool) {
	for _, r := range nt.Rules {
		if r.Kind == RuleOp && r.Op.Arity == Arity3 && r.Op.Name == name {
			return r, true
		}
	}
	return ProdRule{}, false
}

// Grammar is the finite ordered list of non-terminals (spec §3). Non-
// terminal 0 is the start symbol.
type Grammar struct {
	NonTerminals []*NonTerminal
}

// NewGrammar validates and wraps a non-terminal list. It returns
// ErrGrammarMisuse if any production rule's operator is nil (the external
// parser is supposed to have already resolved operator names against the
// operator table; spec §7 "operator name not in table" is fatal).
func NewGrammar(nts []*NonTerminal) (*Grammar, error) {
	for _, nt := range nts {
		for _, r := range nt.Rules {
			if r.Kind == RuleOp && r.Op == nil {
				return nil, ErrGrammarMisuse.New("non-terminal " + nt.Name + " has an unresolved operator")
			}
			for _, c := range r.Children[:int(maxArity(r))] {
				if c < 0 || c >= len(nts) {
					return nil, ErrGrammarMisuse.New("non-terminal " + nt.Name + " references out-of-range child")
				}
			}
		}
	}
	return &Grammar{NonTerminals: nts}, nil
}

func maxArity(r ProdRule) Arity {
	if r.Kind != RuleOp {
		return 0
	}
	return r.Op.Arity
}

// Len returns the number of non-terminals.
func (g *Grammar) Len() int { return len(g.NonTerminals) }

// Start returns the start non-terminal (index 0).
func (g *Grammar) Start() *NonTerminal { return g.NonTerminals[0] }

// AllStringConstants returns the set of string constants declared at the
// start non-terminal, matching original_source/src/forward/executor.rs's
// OtherData.all_str_const. It rescans the start rules on every call; its
// caller is StrDeducer's candidateSeparators (deduce_str.go).
func (g *Grammar) AllStringConstants() map[string]struct{} {
	out := map[string]struct{}{}
	for _, r := range g.Start().Rules {
		if r.Kind == RuleConst && r.ConstTy == TypeStr {
			out[r.ConstScal.(string)] = struct{}{}
		}
	}
	return out
}
