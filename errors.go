package parsley

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Position is the line/column/offset a ParseError (or FatalError) is
// anchored to. Grounded on the teacher's Location (pos.go).
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func posOf(c Cursor) Position {
	return Position{Offset: c.Offset(), Line: c.Line(), Column: c.Column()}
}

// ErrorKind distinguishes the two failure categories that participate in
// ordinary backtracking and error merging (spec.md §7 categories 1 and 2).
// Categories 3-5 (UnfilledRegister, NonConsumptiveIteration, RegisterReuse)
// are programmer errors and are reported as *FatalError instead, since they
// must bypass alt's recovery entirely.
type ErrorKind int

const (
	// KindExpected is reported by satisfy/eof/string and propagated by label/
	// hide: "one of a set of labels was expected but not found".
	KindExpected ErrorKind = iota
	// KindUserReason is reported by fail/explain/filterOut.
	KindUserReason
)

// ParseError is the structured failure spec.md §6 promises callers: a
// position, an expected set, an optional unexpected token, and a list of
// user reasons. It is the value returned from a failed Parse/ParseFully.
//
// Grounded on the teacher's errors.go (ParsingError/backtrackingError),
// generalized from the teacher's two ad hoc error structs into the single
// shape the spec's merge rule (§4.7) operates over.
type ParseError struct {
	Pos        Position
	Expected   []string
	Unexpected string
	Reasons    []string
	Kind       ErrorKind
}

func (e *ParseError) Error() string {
	var b strings.Builder
	switch {
	case len(e.Expected) > 0:
		if e.Unexpected != "" {
			fmt.Fprintf(&b, "unexpected %s, ", e.Unexpected)
		}
		fmt.Fprintf(&b, "expected %s", strings.Join(e.Expected, " or "))
	case e.Unexpected != "":
		fmt.Fprintf(&b, "unexpected %s", e.Unexpected)
	case len(e.Reasons) > 0:
		b.WriteString(strings.Join(e.Reasons, "; "))
	default:
		b.WriteString("parse error")
	}
	if len(e.Reasons) > 0 && len(e.Expected)+len(e.Unexpected) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Reasons, "; "))
	}
	fmt.Fprintf(&b, " @ %s", e.Pos)
	return b.String()
}

// FatalKind identifies a spec.md §7 category 3-5 programmer error: reading
// an unfilled register, a non-terminating `many`, or a register bound to
// two simultaneous runs. These abort the run immediately rather than
// flowing through alt's recovery.
type FatalKind int

const (
	KindUnfilledRegister FatalKind = iota
	KindNonConsumptiveIteration
	KindRegisterReuse
)

// FatalError is the distinct diagnostic spec.md §7 requires for categories
// 3-5. It is never produced by ordinary input failures and is never
// recovered by alt, atomic, or choice -- it unwinds straight out of Parse.
//
// Panicking for this class of error mirrors a convention for programmer
// mistakes seen in bshepherdson-psec, whose Symbol() panics when asked
// to run an undefined grammar rule, on the grounds that "this is a
// programming error, not a problem with the user input".
type FatalError struct {
	Kind    FatalKind
	Message string
	Pos     Position
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s @ %s", e.Message, e.Pos)
}

// mergeErrors implements the progress-based error merging rule of
// spec.md §4.7/§7: same-position failures union their expected sets and
// concatenate their reasons, and a failure at a strictly later position
// always dominates an earlier one.
func mergeErrors(a, b *ParseError) *ParseError {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Pos.Offset == b.Pos.Offset:
		unexpected := b.Unexpected
		if unexpected == "" {
			unexpected = a.Unexpected
		}
		kind := a.Kind
		if kind == KindExpected && b.Kind == KindUserReason && len(a.Expected) == 0 {
			kind = b.Kind
		}
		return &ParseError{
			Pos:        a.Pos,
			Expected:   unionExpected(a.Expected, b.Expected),
			Unexpected: unexpected,
			Reasons:    mergeReasons(a.Reasons, b.Reasons),
			Kind:       kind,
		}
	case a.Pos.Offset > b.Pos.Offset:
		return a
	default:
		return b
	}
}

func unionExpected(a, b []string) []string {
	if len(a) == 0 {
		return append([]string(nil), b...)
	}
	if len(b) == 0 {
		return append([]string(nil), a...)
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// mergeReasons concatenates and de-duplicates two reason lists using
// go.uber.org/multierr's Append/Errors flattening, grounded on
// other_examples/manifests/stntngo-avram's go.mod choice of multierr for
// this exact domain (see SPEC_FULL.md EXPANSION 2.2).
func mergeReasons(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	var combined error
	for _, s := range a {
		combined = multierr.Append(combined, errors.New(s))
	}
	for _, s := range b {
		combined = multierr.Append(combined, errors.New(s))
	}
	flat := multierr.Errors(combined)
	seen := make(map[string]struct{}, len(flat))
	out := make([]string, 0, len(flat))
	for _, e := range flat {
		s := e.Error()
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Label replaces p's expected-set with {name} at the entry position
// (spec.md §4.7). If p fails having consumed input, the label is not
// applied and the original failure propagates unchanged.
func Label[T any](p Parser[T], name string) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		start := ev.cur
		v, ok := p.run(ev)
		if !ok && ev.cur.Offset() == start.Offset() {
			unexpected := ""
			if ev.err != nil {
				unexpected = ev.err.Unexpected
			}
			ev.err = &ParseError{
				Pos:        posOf(start),
				Expected:   []string{name},
				Unexpected: unexpected,
			}
		}
		return v, ok
	}}
}

// Hide removes p's expected-set entirely on failure, used to keep
// whitespace-skipping parsers out of error messages.
func Hide[T any](p Parser[T]) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		v, ok := p.run(ev)
		if !ok && ev.err != nil {
			cp := *ev.err
			cp.Expected = nil
			ev.err = &cp
		}
		return v, ok
	}}
}

// Explain appends a user reason to p's failure.
func Explain[T any](p Parser[T], reason string) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		v, ok := p.run(ev)
		if !ok && ev.err != nil {
			cp := *ev.err
			cp.Reasons = append(append([]string{}, cp.Reasons...), reason)
			ev.err = &cp
		}
		return v, ok
	}}
}

// Filter fails p when its result does not satisfy pred. By convention
// filter operates within the committed region: it does not reset the
// cursor, so a Filter failure after a consuming parse is itself a
// consuming failure unless the whole thing is wrapped in Atomic.
func Filter[T any](p Parser[T], pred func(T) bool, reason string) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		v, ok := p.run(ev)
		if !ok {
			var zero T
			return zero, false
		}
		if !pred(v) {
			ev.fail(&ParseError{Pos: ev.pos(), Kind: KindUserReason, Reasons: []string{reason}})
			var zero T
			return zero, false
		}
		return v, true
	}}
}

// FilterOut fails p when partial reports a reason for its result,
// succeeding otherwise. Same commit convention as Filter.
func FilterOut[T any](p Parser[T], partial func(T) (reason string, bad bool)) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		v, ok := p.run(ev)
		if !ok {
			var zero T
			return zero, false
		}
		if reason, bad := partial(v); bad {
			ev.fail(&ParseError{Pos: ev.pos(), Kind: KindUserReason, Reasons: []string{reason}})
			var zero T
			return zero, false
		}
		return v, true
	}}
}
