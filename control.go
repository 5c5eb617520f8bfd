package parsley

// IfP runs cond and branches on the boolean it yields.
func IfP[T any](cond Parser[bool], thenP, elseP Parser[T]) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		c, ok := cond.run(ev)
		if !ok {
			var zero T
			return zero, false
		}
		if c {
			return thenP.run(ev)
		}
		return elseP.run(ev)
	}}
}

// When is IfP(cond, thenP, pure(Unit{})).
func When(cond Parser[bool], thenP Parser[Unit]) Parser[Unit] {
	return IfP(cond, thenP, Pure(Unit{}))
}

// WhileP repeatedly runs p, continuing while it yields true and stopping
// on false; a failure of p fails WhileP.
func WhileP(p Parser[bool]) Parser[Unit] {
	return Parser[Unit]{run: func(ev *evaluator) (Unit, bool) {
		for {
			cont, ok := p.run(ev)
			if !ok {
				return Unit{}, false
			}
			if !cont {
				return Unit{}, true
			}
		}
	}}
}

// ForP_ creates a fresh register, seeds it with init's result, and loops:
// evaluate cond to get a predicate, read the register, and if the
// predicate holds run body with the current value, then update the
// register via step; otherwise stop.
func ForP_[A any](init Parser[A], cond Parser[func(A) bool], step Parser[func(A) A], body func(A) Parser[Unit]) Parser[Unit] {
	return FillReg(init, func(r Register[A]) Parser[Unit] {
		return Parser[Unit]{run: func(ev *evaluator) (Unit, bool) {
			for {
				predFn, ok := cond.run(ev)
				if !ok {
					return Unit{}, false
				}
				cur, ok := r.Get().run(ev)
				if !ok {
					return Unit{}, false
				}
				if !predFn(cur) {
					return Unit{}, true
				}
				if _, ok := body(cur).run(ev); !ok {
					return Unit{}, false
				}
				stepFn, ok := step.run(ev)
				if !ok {
					return Unit{}, false
				}
				if _, ok := r.Modify(stepFn).run(ev); !ok {
					return Unit{}, false
				}
			}
		}}
	})
}

// ForYieldP_ is ForP_ except each body(cur) result is collected, and the
// accumulated slice is returned once the predicate first turns false.
func ForYieldP_[A, B any](init Parser[A], cond Parser[func(A) bool], step Parser[func(A) A], body func(A) Parser[B]) Parser[[]B] {
	return FillReg(init, func(r Register[A]) Parser[[]B] {
		return Parser[[]B]{run: func(ev *evaluator) ([]B, bool) {
			var results []B
			for {
				predFn, ok := cond.run(ev)
				if !ok {
					return nil, false
				}
				cur, ok := r.Get().run(ev)
				if !ok {
					return nil, false
				}
				if !predFn(cur) {
					return results, true
				}
				v, ok := body(cur).run(ev)
				if !ok {
					return nil, false
				}
				results = append(results, v)
				stepFn, ok := step.run(ev)
				if !ok {
					return nil, false
				}
				if _, ok := r.Modify(stepFn).run(ev); !ok {
					return nil, false
				}
			}
		}}
	})
}
