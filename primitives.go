package parsley

import "fmt"

// Pure succeeds with x and consumes no input.
func Pure[T any](x T) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		return x, true
	}}
}

// Empty fails with no expected-set information and consumes no input.
func Empty[T any]() Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		ev.fail(&ParseError{Pos: ev.pos()})
		var zero T
		return zero, false
	}}
}

// Fail always fails with a user-supplied reason and consumes no input.
func Fail[T any](reason string) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		ev.fail(&ParseError{Pos: ev.pos(), Kind: KindUserReason, Reasons: []string{reason}})
		var zero T
		return zero, false
	}}
}

// Satisfy fails without consuming at EOF or when pred rejects the next
// character; otherwise it consumes one character (one full rune -- Go
// strings are UTF-8, so decoding a whole rune at a time is already the
// "Unicode-aware" consumption spec.md §4.1 asks for) and yields it. label,
// when given, becomes the expected-set entry on failure.
func Satisfy(pred func(rune) bool, label ...string) Parser[rune] {
	var lbl string
	if len(label) > 0 {
		lbl = label[0]
	}
	return Parser[rune]{run: func(ev *evaluator) (rune, bool) {
		r, ok := ev.cur.Peek()
		if !ok || !pred(r) {
			var expected []string
			if lbl != "" {
				expected = []string{lbl}
			}
			unexpected := "end of input"
			if ok {
				unexpected = fmt.Sprintf("%q", r)
			}
			ev.fail(&ParseError{Pos: ev.pos(), Expected: expected, Unexpected: unexpected})
			return 0, false
		}
		ev.cur = ev.cur.Advance()
		return r, true
	}}
}

// Item accepts any single character.
func Item() Parser[rune] {
	return Satisfy(func(rune) bool { return true })
}

// Eof succeeds with Unit iff the cursor is at the end of input.
func Eof() Parser[Unit] {
	return Parser[Unit]{run: func(ev *evaluator) (Unit, bool) {
		if r, ok := ev.cur.Peek(); ok {
			ev.fail(&ParseError{
				Pos:        ev.pos(),
				Expected:   []string{"end of input"},
				Unexpected: fmt.Sprintf("%q", r),
			})
			return Unit{}, false
		}
		return Unit{}, true
	}}
}

// StringLit attempts to match s character by character. A mismatch at
// character index 0 fails without consuming; a mismatch at index i>0
// fails having consumed i characters -- this is the LL(1) commit policy
// spec.md §4.2 mandates for literal-string matching. Wrap in Atomic to
// opt out and backtrack past a partial literal match.
func StringLit(s string) Parser[string] {
	want := []rune(s)
	return Parser[string]{run: func(ev *evaluator) (string, bool) {
		for _, w := range want {
			got, ok := ev.cur.Peek()
			if !ok || got != w {
				unexpected := "end of input"
				if ok {
					unexpected = fmt.Sprintf("%q", got)
				}
				ev.fail(&ParseError{
					Pos:        ev.pos(),
					Expected:   []string{fmt.Sprintf("%q", s)},
					Unexpected: unexpected,
				})
				return "", false
			}
			ev.cur = ev.cur.Advance()
		}
		return s, true
	}}
}
