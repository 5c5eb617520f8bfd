package parsley

import "sync/atomic"

// regCell is one slot in a run's register vector: a filled flag plus a
// boxed value. Boxing as interface{} is what lets a single evaluator hold
// registers of heterogeneous T without a non-generic container type.
type regCell struct {
	filled bool
	value  interface{}
}

// regHandle is a Register's run-independent identity. owner records which
// *evaluator currently has this handle bound, so a second, concurrently
// active evaluator trying to bind the same handle is detected and
// rejected (spec.md §5/§7 category 5) instead of silently corrupting
// state. Grounded on the teacher's BaseParser run-scoped bookkeeping
// (predStkCnt, labelMsgs), generalized from ad hoc fields into an
// explicit, externally-identified slot.
type regHandle struct {
	owner atomic.Pointer[evaluator]
}

// Register[T] is a typed, externally-identified mutable cell whose
// lifetime is one top-level run (spec.md §3). A Register created outside a
// run is unallocated until its first use within a run binds it a slot;
// that binding is released when the run completes, so a Register may be
// reused across sequential runs, but never shared between two
// concurrently executing ones.
type Register[T any] struct {
	h *regHandle
}

// NewRegister allocates a fresh, unbound register identity.
func NewRegister[T any]() Register[T] {
	return Register[T]{h: &regHandle{}}
}

func (r Register[T]) mustCell(ev *evaluator) *regCell {
	c, reuse := ev.cellFor(r.h)
	if reuse {
		ev.fatal(KindRegisterReuse, "register bound to two simultaneous top-level runs")
	}
	return c
}

// Get is a pure, non-consuming read. It fails the run immediately with
// UnfilledRegister if this register was never written to in this run.
func (r Register[T]) Get() Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		c := r.mustCell(ev)
		if !c.filled {
			ev.fatal(KindUnfilledRegister, "register read before being written in this run")
		}
		return c.value.(T), true
	}}
}

// Put writes a literal value into the register and returns it.
func (r Register[T]) Put(x T) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		c := r.mustCell(ev)
		c.value = x
		c.filled = true
		return x, true
	}}
}

// PutP writes the result of running p into the register.
func (r Register[T]) PutP(p Parser[T]) Parser[T] {
	return Parser[T]{run: func(ev *evaluator) (T, bool) {
		v, ok := p.run(ev)
		if !ok {
			var zero T
			return zero, false
		}
		c := r.mustCell(ev)
		c.value = v
		c.filled = true
		return v, true
	}}
}

// Modify is an atomic read-write with a pure function: PutP(Map(Get, f)).
func (r Register[T]) Modify(f func(T) T) Parser[T] {
	return r.PutP(Map(r.Get(), f))
}

// ModifyP is Modify where the update function itself comes from a parser.
func (r Register[T]) ModifyP(pf Parser[func(T) T]) Parser[T] {
	return r.PutP(Ap(pf, r.Get()))
}

// Gets is Map(r.Get(), f).
func Gets[T, A any](r Register[T], f func(T) A) Parser[A] {
	return Map(r.Get(), f)
}

// GetsP is Ap(pf, r.Get()).
func GetsP[T, A any](r Register[T], pf Parser[func(T) A]) Parser[A] {
	return Ap(pf, r.Get())
}

// Puts writes f applied to p's result into the register.
func Puts[T any](r Register[T], p Parser[T], f func(T) T) Parser[T] {
	return r.PutP(Map(p, f))
}

// Local saves r's prior value, sets it to newVal, runs body, and restores
// the prior value on SUCCESS only -- per spec.md §9's resolved open
// question, a failing body leaves the register in whatever state body put
// it in. Pair with Rollback for restoration on failure too.
func Local[T, A any](r Register[T], newVal T, body Parser[A]) Parser[A] {
	return localRun(r, Pure(newVal), body)
}

// LocalP is Local where the new value comes from running a parser first.
func LocalP[T, A any](r Register[T], newValP Parser[T], body Parser[A]) Parser[A] {
	return localRun(r, newValP, body)
}

// LocalWith is Local where the new value is f applied to r's current
// value.
func LocalWith[T, A any](r Register[T], f func(T) T, body Parser[A]) Parser[A] {
	return localRun(r, Map(r.Get(), f), body)
}

func localRun[T, A any](r Register[T], newValP Parser[T], body Parser[A]) Parser[A] {
	return Parser[A]{run: func(ev *evaluator) (A, bool) {
		newVal, ok := newValP.run(ev)
		if !ok {
			var zero A
			return zero, false
		}
		c := r.mustCell(ev)
		hadPrev, prev := c.filled, c.value
		c.value = newVal
		c.filled = true
		v, ok2 := body.run(ev)
		if ok2 {
			c.value = prev
			c.filled = hadPrev
		}
		return v, ok2
	}}
}

// Rollback saves r's prior value, runs p, and if p fails NON-CONSUMINGLY
// restores the saved value before propagating the (still non-consuming)
// failure. A consuming failure, or a success, passes through untouched.
func Rollback[T, A any](r Register[T], p Parser[A]) Parser[A] {
	return Parser[A]{run: func(ev *evaluator) (A, bool) {
		c := r.mustCell(ev)
		hadPrev, prev := c.filled, c.value
		start := ev.cur
		v, ok := p.run(ev)
		if !ok && ev.cur.Offset() == start.Offset() {
			c.value = prev
			c.filled = hadPrev
		}
		return v, ok
	}}
}

// FillReg allocates a fresh register, initializes it with p's result, and
// runs body(reg); the register is deallocated on every exit path from
// body regardless of outcome.
func FillReg[T, A any](p Parser[T], body func(Register[T]) Parser[A]) Parser[A] {
	return Parser[A]{run: func(ev *evaluator) (A, bool) {
		v, ok := p.run(ev)
		if !ok {
			var zero A
			return zero, false
		}
		r := NewRegister[T]()
		c, _ := ev.cellFor(r.h)
		c.value = v
		c.filled = true
		defer ev.releaseOne(r.h)
		return body(r).run(ev)
	}}
}

// Persist lets a single parse result be inspected multiple times without
// reparsing: fillReg(p, r => f(r.get)).
func Persist[T, A any](p Parser[T], f func(Parser[T]) Parser[A]) Parser[A] {
	return FillReg(p, func(r Register[T]) Parser[A] {
		return f(r.Get())
	})
}
