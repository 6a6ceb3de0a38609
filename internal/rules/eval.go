package rules

// Evaluator compiles and evaluates rule expressions against state snapshots.
// Compiled rules are cached by their source text, so a network's rules are
// parsed once per evaluator regardless of step count.
//
// Evaluation never aborts a simulation: malformed rules evaluate to false and
// bump Failures; identifiers absent from the snapshot resolve to false and
// bump MissingRefs.
type Evaluator struct {
	cache map[string]Expr
	bad   map[string]bool

	Failures    int
	MissingRefs int
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache: make(map[string]Expr),
		bad:   make(map[string]bool),
	}
}

func (e *Evaluator) Evaluate(rule string, snapshot map[string]bool) bool {
	if e.bad[rule] {
		e.Failures++
		return false
	}
	expr, ok := e.cache[rule]
	if !ok {
		var err error
		expr, err = Compile(rule)
		if err != nil {
			e.bad[rule] = true
			e.Failures++
			return false
		}
		e.cache[rule] = expr
	}
	return e.eval(expr, snapshot)
}

func (e *Evaluator) eval(expr Expr, snapshot map[string]bool) bool {
	switch x := expr.(type) {
	case Lit:
		return x.Value
	case Var:
		v, ok := snapshot[x.Name]
		if !ok {
			e.MissingRefs++
			return false
		}
		return v
	case Not:
		return !e.eval(x.X, snapshot)
	case And:
		// No short-circuit: both sides are walked so missing references
		// are counted consistently regardless of operand order.
		l := e.eval(x.Left, snapshot)
		r := e.eval(x.Right, snapshot)
		return l && r
	case Or:
		l := e.eval(x.Left, snapshot)
		r := e.eval(x.Right, snapshot)
		return l || r
	default:
		e.Failures++
		return false
	}
}

// Reset clears the soft-failure counters but keeps the compile cache.
func (e *Evaluator) Reset() {
	e.Failures = 0
	e.MissingRefs = 0
}

// Deps returns the identifiers referenced by a rule, or nil if the rule does
// not compile.
func Deps(rule string) []string {
	expr, err := Compile(rule)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	var walk func(Expr)
	walk = func(x Expr) {
		switch n := x.(type) {
		case Var:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case Not:
			walk(n.X)
		case And:
			walk(n.Left)
			walk(n.Right)
		case Or:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(expr)
	return names
}
