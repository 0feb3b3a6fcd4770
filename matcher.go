package matchfsm

import (
	"fmt"
	"reflect"
)

// Pattern classifies values of T. The graph stores patterns for both state
// and event dispatch and evaluates them first-match in registration order;
// patterns are not prioritized by specificity.
type Pattern[T any] interface {
	Matches(v T) bool
	String() string
}

// Matcher matches a value of T whose dynamic type is assignable to R and
// which satisfies every predicate. Matchers are immutable: Where returns a
// derived matcher and leaves the receiver untouched.
type Matcher[T, R any] struct {
	predicates []func(R) bool
	desc       string
}

func typeOf[R any]() reflect.Type {
	return reflect.TypeOf((*R)(nil)).Elem()
}

// Any matches every T whose dynamic type is R
func Any[T, R any]() Matcher[T, R] {
	return Matcher[T, R]{desc: typeOf[R]().String()}
}

// Eq matches the single value v. Values whose comparison would panic
// (e.g. an interface holding a slice) never match.
func Eq[T any, R comparable](v R) Matcher[T, R] {
	m := Any[T, R]().Where(func(r R) bool { return equal(r, v) })
	m.desc = fmt.Sprintf("%v", v)
	return m
}

// Value matches the single value v, comparing the dynamic values with ==.
// Like Eq, a comparison that would panic is treated as a mismatch.
func Value[T any](v T) Matcher[T, T] {
	m := Any[T, T]().Where(func(x T) bool { return equal(any(x), any(v)) })
	m.desc = fmt.Sprintf("%v", v)
	return m
}

// Where returns a matcher that additionally requires pred to hold.
// Predicates must be free of side effects; evaluation order is unspecified.
func (m Matcher[T, R]) Where(pred func(R) bool) Matcher[T, R] {
	predicates := make([]func(R) bool, len(m.predicates), len(m.predicates)+1)
	copy(predicates, m.predicates)
	return Matcher[T, R]{
		predicates: append(predicates, pred),
		desc:       m.desc + " where",
	}
}

// Matches reports whether v is an R satisfying all predicates
func (m Matcher[T, R]) Matches(v T) bool {
	r, ok := any(v).(R)
	if !ok {
		return false
	}
	for _, pred := range m.predicates {
		if !pred(r) {
			return false
		}
	}
	return true
}

func (m Matcher[T, R]) String() string {
	return m.desc
}

// equal compares a and b with ==, reporting false instead of panicking when
// the dynamic values are not comparable.
func equal[V comparable](a, b V) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
