package repokit

// Binder produces a domain repo bound to a specific Queryer,
// so the same SQL can run against the pool or an open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function into a Binder, handy in tests
type BindFunc[T any] func(Queryer) T

// Bind calls fn with q
func (fn BindFunc[T]) Bind(q Queryer) T { return fn(q) }
