package parsley

// Pair holds the result of a two-parser sequence that keeps both sides.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Map runs p and applies f to its result on success. Consumption equals
// p's.
func Map[T, A any](p Parser[T], f func(T) A) Parser[A] {
	return Parser[A]{run: func(ev *evaluator) (A, bool) {
		v, ok := p.run(ev)
		if !ok {
			var zero A
			return zero, false
		}
		return f(v), true
	}}
}

// SeqBoth runs p then q, returning both results as a Pair. If p consumed
// input, a subsequent failure of q is reported as consuming, automatically:
// whichever combinator later compares cursor offsets (Alt, Label, ...) does
// so from its own entry point, so any consumption p performed before q
// failed is already included.
func SeqBoth[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return Parser[Pair[A, B]]{run: func(ev *evaluator) (Pair[A, B], bool) {
		a, ok := p.run(ev)
		if !ok {
			var zero Pair[A, B]
			return zero, false
		}
		b, ok2 := q.run(ev)
		if !ok2 {
			var zero Pair[A, B]
			return zero, false
		}
		return Pair[A, B]{First: a, Second: b}, true
	}}
}

// Seq is an alias for SeqBoth: run p, then q, both must succeed.
func Seq[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return SeqBoth(p, q)
}

// SeqL runs p then q, keeping only p's result.
func SeqL[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return Parser[A]{run: func(ev *evaluator) (A, bool) {
		a, ok := p.run(ev)
		if !ok {
			var zero A
			return zero, false
		}
		if _, ok2 := q.run(ev); !ok2 {
			var zero A
			return zero, false
		}
		return a, true
	}}
}

// SeqR runs p then q, keeping only q's result.
func SeqR[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return Parser[B]{run: func(ev *evaluator) (B, bool) {
		if _, ok := p.run(ev); !ok {
			var zero B
			return zero, false
		}
		return q.run(ev)
	}}
}

// Lift2 sequences p and q left to right and combines their results with f.
// Equivalent to Map(SeqBoth(p, q), ...); grounded on jhbrown-veradept's
// Apply2.
func Lift2[A, B, R any](f func(A, B) R, p Parser[A], q Parser[B]) Parser[R] {
	return Map(SeqBoth(p, q), func(pr Pair[A, B]) R { return f(pr.First, pr.Second) })
}

// Lift3 sequences p, q, r left to right and combines their results with f.
// Grounded on jhbrown-veradept's Apply3.
func Lift3[A, B, C, R any](f func(A, B, C) R, p Parser[A], q Parser[B], r Parser[C]) Parser[R] {
	return Parser[R]{run: func(ev *evaluator) (R, bool) {
		a, ok := p.run(ev)
		if !ok {
			var zero R
			return zero, false
		}
		b, ok2 := q.run(ev)
		if !ok2 {
			var zero R
			return zero, false
		}
		c, ok3 := r.run(ev)
		if !ok3 {
			var zero R
			return zero, false
		}
		return f(a, b, c), true
	}}
}

// Lift4 sequences four parsers left to right and combines their results
// with f, extending the Lift2/Lift3 arity family one step further.
func Lift4[A, B, C, D, R any](f func(A, B, C, D) R, p Parser[A], q Parser[B], r Parser[C], s Parser[D]) Parser[R] {
	return Parser[R]{run: func(ev *evaluator) (R, bool) {
		a, ok := p.run(ev)
		if !ok {
			var zero R
			return zero, false
		}
		b, ok2 := q.run(ev)
		if !ok2 {
			var zero R
			return zero, false
		}
		c, ok3 := r.run(ev)
		if !ok3 {
			var zero R
			return zero, false
		}
		d, ok4 := s.run(ev)
		if !ok4 {
			var zero R
			return zero, false
		}
		return f(a, b, c, d), true
	}}
}

// Ap is applicative application: equivalent to Lift2(apply, pf, px).
func Ap[A, R any](pf Parser[func(A) R], px Parser[A]) Parser[R] {
	return Lift2(func(f func(A) R, x A) R { return f(x) }, pf, px)
}

// Either is a two-armed sum used by Select to encode conditional
// continuations without a third parser branch. In a language without
// subtyping, the spec's variance note for Alt calls for an explicit
// sum/union; Either is that union.
type Either[L, R any] struct {
	isRight bool
	left    L
	right   R
}

// MkLeft builds the left arm of an Either.
func MkLeft[L, R any](l L) Either[L, R] { return Either[L, R]{left: l} }

// MkRight builds the right arm of an Either.
func MkRight[L, R any](r R) Either[L, R] { return Either[L, R]{isRight: true, right: r} }

// IsRight reports which arm an Either holds.
func (e Either[L, R]) IsRight() bool { return e.isRight }

// Select runs pEither; if it yields the left arm u, runs pRight and
// applies it to u; if it yields the right arm a, returns a directly
// without running pRight at all.
func Select[U, A any](pEither Parser[Either[U, A]], pRight Parser[func(U) A]) Parser[A] {
	return Parser[A]{run: func(ev *evaluator) (A, bool) {
		e, ok := pEither.run(ev)
		if !ok {
			var zero A
			return zero, false
		}
		if e.isRight {
			return e.right, true
		}
		f, ok2 := pRight.run(ev)
		if !ok2 {
			var zero A
			return zero, false
		}
		return f(e.left), true
	}}
}
