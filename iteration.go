package parsley

// Many runs p zero or more times, accumulating results. A non-consuming
// failure of p stops the loop and returns what was accumulated so far; a
// CONSUMING failure of p fails the whole iteration. p succeeding without
// consuming input would loop forever, so that case is rejected at runtime
// as a NonConsumptiveIteration fatal error (spec.md §4.5/§7 category 4)
// rather than silently hanging.
func Many[T any](p Parser[T]) Parser[[]T] {
	return Parser[[]T]{run: func(ev *evaluator) ([]T, bool) {
		var results []T
		for {
			start := ev.cur
			v, ok := p.run(ev)
			if !ok {
				if ev.cur.Offset() != start.Offset() {
					return nil, false
				}
				return results, true
			}
			if ev.cur.Offset() == start.Offset() {
				ev.fatal(KindNonConsumptiveIteration, "many: inner parser succeeded without consuming input")
			}
			results = append(results, v)
		}
	}}
}

// Some runs p one or more times: p then Many(p).
func Some[T any](p Parser[T]) Parser[[]T] {
	return Lift2(func(first T, rest []T) []T {
		return append([]T{first}, rest...)
	}, p, Many(p))
}

// ManyN runs p exactly n times, then Many(p) for the rest. n<0 is a
// programmer error, rejected immediately at construction (like
// bshepherdson-psec's Symbol panicking on an undefined rule) since it
// does not depend on any particular input.
func ManyN[T any](n int, p Parser[T]) Parser[[]T] {
	if n < 0 {
		panic("parsley: ManyN requires n >= 0")
	}
	return Parser[[]T]{run: func(ev *evaluator) ([]T, bool) {
		results := make([]T, 0, n)
		for i := 0; i < n; i++ {
			v, ok := p.run(ev)
			if !ok {
				return nil, false
			}
			results = append(results, v)
		}
		rest, ok := Many(p).run(ev)
		if !ok {
			return nil, false
		}
		return append(results, rest...), true
	}}
}

// SkipMany is Many discarding its results.
func SkipMany[T any](p Parser[T]) Parser[Unit] {
	return Map(Many(p), func([]T) Unit { return Unit{} })
}

// SkipSome is Some discarding its results.
func SkipSome[T any](p Parser[T]) Parser[Unit] {
	return Map(Some(p), func([]T) Unit { return Unit{} })
}

// SkipManyN is ManyN discarding its results.
func SkipManyN[T any](n int, p Parser[T]) Parser[Unit] {
	return Map(ManyN(n, p), func([]T) Unit { return Unit{} })
}

// ManyUntil repeatedly tries end; as soon as end succeeds, it stops
// (discarding end's result) and returns the accumulated p-results.
// Otherwise it requires p to succeed and continues. A consuming failure
// of end, or any failure of p, fails the whole combinator.
func ManyUntil[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return Parser[[]T]{run: func(ev *evaluator) ([]T, bool) {
		var results []T
		for {
			start := ev.cur
			_, ok := end.run(ev)
			if ok {
				return results, true
			}
			if ev.cur.Offset() != start.Offset() {
				return nil, false
			}
			v, ok2 := p.run(ev)
			if !ok2 {
				return nil, false
			}
			results = append(results, v)
		}
	}}
}

// SomeUntil asserts NotFollowedBy(end), then runs p once followed by
// ManyUntil(p, end).
func SomeUntil[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return SeqR(NotFollowedBy(end), Lift2(func(first T, rest []T) []T {
		return append([]T{first}, rest...)
	}, p, ManyUntil(p, end)))
}

// SepBy1 matches one or more p, separated by sep: p then Many(sep *> p).
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Lift2(func(first T, rest []T) []T {
		return append([]T{first}, rest...)
	}, p, Many(SeqR(sep, p)))
}

// SepBy matches zero or more p, separated by sep.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Alt(SepBy1(p, sep), Pure([]T{}))
}

// SepEndBy1 matches one or more p, each optionally followed by sep; a
// trailing sep is allowed. Loop: parse p; try sep -- if sep is absent (or
// fails non-consumingly) stop; otherwise try another p -- if that p is
// absent (or fails non-consumingly) stop, having accepted the trailing
// sep.
func SepEndBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Parser[[]T]{run: func(ev *evaluator) ([]T, bool) {
		v, ok := p.run(ev)
		if !ok {
			return nil, false
		}
		results := []T{v}
		for {
			start := ev.cur
			_, sepOk := sep.run(ev)
			if !sepOk {
				if ev.cur.Offset() != start.Offset() {
					return nil, false
				}
				return results, true
			}
			pStart := ev.cur
			v2, ok2 := p.run(ev)
			if !ok2 {
				if ev.cur.Offset() != pStart.Offset() {
					return nil, false
				}
				return results, true
			}
			results = append(results, v2)
		}
	}}
}

// SepEndBy matches zero or more p, each optionally followed by sep,
// companion of SepEndBy1 the way SepBy complements SepBy1.
func SepEndBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Alt(SepEndBy1(p, sep), Pure([]T{}))
}

// EndBy1 matches one or more p, each followed by sep: Some(p <* sep).
func EndBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Some(SeqL(p, sep))
}

// EndBy matches zero or more p, each followed by sep: Many(p <* sep).
func EndBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Many(SeqL(p, sep))
}

// Exactly runs p exactly n times and stops, unlike ManyN which continues
// with Many(p) afterward. n<0 is a programmer error.
func Exactly[T any](n int, p Parser[T]) Parser[[]T] {
	if n < 0 {
		panic("parsley: Exactly requires n >= 0")
	}
	return Parser[[]T]{run: func(ev *evaluator) ([]T, bool) {
		results := make([]T, 0, n)
		for i := 0; i < n; i++ {
			v, ok := p.run(ev)
			if !ok {
				return nil, false
			}
			results = append(results, v)
		}
		return results, true
	}}
}
