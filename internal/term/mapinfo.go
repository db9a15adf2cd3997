package term

// MapInfo replaces every info payload in e with f(payload), preserving
// shape. This is the single structural-recursion pass that type inference
// uses to turn a located program into a typed one: nothing about it is
// specific to types, so it is equally usable for any other payload
// transformation a caller needs.
func MapInfo[I, J any](e Expr[I], f func(I) J) Expr[J] {
	switch n := e.(type) {
	case Number[I]:
		return Number[J]{Payload: f(n.Payload), IsFloat: n.IsFloat, Int: n.Int, Float: n.Float}
	case Const[I]:
		return Const[J]{Payload: f(n.Payload), Name: n.Name, IsPredicate: n.IsPredicate, GivenArity: n.GivenArity, InferredArity: n.InferredArity}
	case PredConst[I]:
		return PredConst[J]{Payload: f(n.Payload), Name: n.Name, GivenArity: n.GivenArity, InferredArity: n.InferredArity}
	case Var[I]:
		return Var[J]{Payload: f(n.Payload), Name: n.Name}
	case AnonVar[I]:
		return AnonVar[J]{Payload: f(n.Payload)}
	case App[I]:
		args := make([]Expr[J], len(n.Args))
		for i, a := range n.Args {
			args[i] = MapInfo(a, f)
		}
		return App[J]{Payload: f(n.Payload), Head: MapInfo(n.Head, f), Args: args}
	case Op[I]:
		args := make([]Expr[J], len(n.Args))
		for i, a := range n.Args {
			args[i] = MapInfo(a, f)
		}
		return Op[J]{Payload: f(n.Payload), Name: n.Name, IsPredicate: n.IsPredicate, Args: args}
	case Lam[I]:
		return Lam[J]{Payload: f(n.Payload), Params: n.Params, Body: MapInfo(n.Body, f)}
	case List[I]:
		elems := make([]Expr[J], len(n.Elements))
		for i, e2 := range n.Elements {
			elems[i] = MapInfo(e2, f)
		}
		var tail Expr[J]
		if n.Tail != nil {
			tail = MapInfo(n.Tail, f)
		}
		return List[J]{Payload: f(n.Payload), Elements: elems, Tail: tail}
	case Eq[I]:
		return Eq[J]{Payload: f(n.Payload), Lhs: MapInfo(n.Lhs, f), Rhs: MapInfo(n.Rhs, f)}
	case Paren[I]:
		return Paren[J]{Payload: f(n.Payload), Inner: MapInfo(n.Inner, f)}
	case Ann[I]:
		return Ann[J]{Payload: f(n.Payload), Inner: MapInfo(n.Inner, f), Annotation: n.Annotation}
	default:
		panic("term: MapInfo: unhandled expression node")
	}
}

// NameOf returns the predicate/function/variable name at the head of e, or
// "" if e has none (e.g. a Number, AnonVar, or compound).
func NameOf[I any](e Expr[I]) string {
	switch n := e.(type) {
	case Const[I]:
		return n.Name
	case PredConst[I]:
		return n.Name
	case Var[I]:
		return n.Name
	case Op[I]:
		return n.Name
	case App[I]:
		return NameOf(n.Head)
	case Paren[I]:
		return NameOf(n.Inner)
	default:
		return ""
	}
}

// ArityOf returns the structural arity of an application node: the number
// of arguments it supplies, or 0 for a node that is not an application.
func ArityOf[I any](e Expr[I]) int {
	switch n := e.(type) {
	case App[I]:
		return len(n.Args)
	case Op[I]:
		return len(n.Args)
	case Paren[I]:
		return ArityOf(n.Inner)
	default:
		return 0
	}
}

// VarsOf returns the free variables of e in order of first occurrence,
// without duplicates. AnonVar never contributes (it is never a binding
// occurrence worth reporting to a caller).
func VarsOf[I any](e Expr[I]) []Symbol {
	var order []Symbol
	seen := map[string]bool{}
	var walk func(Expr[I])
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, Symbol{Name: name})
		}
	}
	walk = func(e Expr[I]) {
		switch n := e.(type) {
		case Var[I]:
			add(n.Name)
		case App[I]:
			walk(n.Head)
			for _, a := range n.Args {
				walk(a)
			}
		case Op[I]:
			for _, a := range n.Args {
				walk(a)
			}
		case Lam[I]:
			bound := map[string]bool{}
			for _, p := range n.Params {
				bound[p] = true
			}
			for _, s := range VarsOf[I](n.Body) {
				if !bound[s.Name] {
					add(s.Name)
				}
			}
		case List[I]:
			for _, e2 := range n.Elements {
				walk(e2)
			}
			if n.Tail != nil {
				walk(n.Tail)
			}
		case Eq[I]:
			walk(n.Lhs)
			walk(n.Rhs)
		case Paren[I]:
			walk(n.Inner)
		case Ann[I]:
			walk(n.Inner)
		}
	}
	walk(e)
	return order
}

// EqualStructural compares two expressions ignoring their info payloads,
// as type inference must when comparing syntax shapes.
func EqualStructural[I any](a, b Expr[I]) bool {
	switch x := a.(type) {
	case Number[I]:
		y, ok := b.(Number[I])
		return ok && x.IsFloat == y.IsFloat && x.Int == y.Int && x.Float == y.Float
	case Const[I]:
		y, ok := b.(Const[I])
		return ok && x.Name == y.Name && x.IsPredicate == y.IsPredicate
	case PredConst[I]:
		y, ok := b.(PredConst[I])
		return ok && x.Name == y.Name
	case Var[I]:
		y, ok := b.(Var[I])
		return ok && x.Name == y.Name
	case AnonVar[I]:
		_, ok := b.(AnonVar[I])
		return ok
	case App[I]:
		y, ok := b.(App[I])
		if !ok || len(x.Args) != len(y.Args) || !EqualStructural[I](x.Head, y.Head) {
			return false
		}
		for i := range x.Args {
			if !EqualStructural[I](x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Op[I]:
		y, ok := b.(Op[I])
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !EqualStructural[I](x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Lam[I]:
		y, ok := b.(Lam[I])
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i] != y.Params[i] {
				return false
			}
		}
		return EqualStructural[I](x.Body, y.Body)
	case List[I]:
		y, ok := b.(List[I])
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !EqualStructural[I](x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		if (x.Tail == nil) != (y.Tail == nil) {
			return false
		}
		if x.Tail != nil {
			return EqualStructural[I](x.Tail, y.Tail)
		}
		return true
	case Eq[I]:
		y, ok := b.(Eq[I])
		return ok && EqualStructural[I](x.Lhs, y.Lhs) && EqualStructural[I](x.Rhs, y.Rhs)
	case Paren[I]:
		return EqualStructural[I](x.Inner, b)
	case Ann[I]:
		y, ok := b.(Ann[I])
		return ok && x.Annotation == y.Annotation && EqualStructural[I](x.Inner, y.Inner)
	default:
		return false
	}
}
