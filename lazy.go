package parsley

import "sync"

// Lazy defers construction of a Parser[T] until its first use, which is
// what makes mutually recursive grammars (expr <-> atom) terminate at
// construction time instead of looping forever while Go eagerly evaluates
// the arguments to the combinators that would build them. Per spec.md §9's
// design note, a language without built-in thunking needs an explicit
// lazy wrapper; this is that wrapper, implemented as a boxed closure.
//
// build runs at most once even if the returned Parser[T] is shared across
// concurrently executing top-level runs (spec.md §5 permits that), guarded
// by sync.Once rather than the run-scoped evaluator state every other
// combinator in this package uses, since construction happens once for
// the lifetime of the Parser value, not once per run.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	var once sync.Once
	var inner Parser[T]
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		once.Do(func() { inner = build() })
		return inner.run(ev)
	}}
}
