package iterator

type errorIterator[T any] struct {
	err error
}

func (e *errorIterator[T]) Next() bool { return false }
func (e *errorIterator[T]) Item() T    { panic("hgmanifest: error iterator: " + e.err.Error()) }

func (e *errorIterator[T]) Err() error   { return e.err }
func (e *errorIterator[T]) Close() error { return e.err }

// Error returns an error iterator.
//
// This error iterator has following properties:
// * Next returns false.
// * Item panics.
// * Err/Close return the specified err.
func Error[T any](err error) Iterator[T] {
	return &errorIterator[T]{err}
}
