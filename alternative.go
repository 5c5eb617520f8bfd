package parsley

import "fmt"

// Alt is ordered choice under LL(1) discipline. It runs p; if p succeeds,
// Alt succeeds. If p fails without consuming input, Alt runs q and merges
// the two failures' expected-sets. If p fails having consumed input, Alt
// propagates p's failure and never runs q -- this implicit commit is the
// policy the whole package's backtracking story rests on; wrap p in Atomic
// to opt out.
//
// Go has no subtyping, so both branches must share the result type T (the
// "least common supertype" spec.md §9's variance note calls for, made
// concrete as a type parameter rather than a union).
func Alt[T any](p, q Parser[T]) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		start := ev.cur
		v, ok := p.run(ev)
		if ok {
			return v, true
		}
		if ev.cur.Offset() != start.Offset() {
			return v, false
		}
		pErr := ev.err
		ev.cur = start
		v2, ok2 := q.run(ev)
		if ok2 {
			return v2, true
		}
		ev.err = mergeErrors(pErr, ev.err)
		return v2, false
	}}
}

// Atomic ("attempt") runs p; on failure it restores the cursor and
// reports the failure as non-consuming, regardless of how much of p
// actually ran before it failed. This is the explicit opt-in to unlimited
// backtracking.
func Atomic[T any](p Parser[T]) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		start := ev.cur
		v, ok := p.run(ev)
		if !ok {
			ev.cur = start
			return v, false
		}
		return v, true
	}}
}

// LookAhead runs p; on success it restores the cursor and yields p's
// value without having advanced the input. On failure it propagates p's
// failure unchanged, including whatever it reports about consumption.
func LookAhead[T any](p Parser[T]) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		start := ev.cur
		v, ok := p.run(ev)
		if ok {
			ev.cur = start
			return v, true
		}
		return v, false
	}}
}

// NotFollowedBy succeeds with Unit iff p fails at the current position; if
// p succeeds, NotFollowedBy fails non-consumingly with an "unexpected"
// message built from p's value. The cursor is restored in every outcome.
func NotFollowedBy[T any](p Parser[T]) Parser[Unit] {
	return Parser[Unit]{run: func(ev *evaluator) (Unit, bool) {
		start := ev.cur
		v, ok := p.run(ev)
		ev.cur = start
		if ok {
			ev.fail(&ParseError{
				Pos:        ev.pos(),
				Unexpected: fmt.Sprintf("%v", v),
			})
			return Unit{}, false
		}
		return Unit{}, true
	}}
}

// Choice folds alt right to left over ps, returning Empty[T]() when ps is
// empty.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		return Empty[T]()
	}
	acc := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		acc = Alt(ps[i], acc)
	}
	return acc
}

// AtomicChoice is Choice with every branch but the last wrapped in Atomic,
// so a partially-consumed failure in any non-final alternative still
// backtracks to try the next one.
func AtomicChoice[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		return Empty[T]()
	}
	acc := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		acc = Alt(Atomic(ps[i]), acc)
	}
	return acc
}
