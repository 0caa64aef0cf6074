package iterator

type emptyIterator[T any] struct{}

func (emptyIterator[T]) Next() bool { return false }
func (emptyIterator[T]) Item() T    { panic("hgmanifest: empty iterator") }
func (emptyIterator[T]) Err() error { return nil }

func (emptyIterator[T]) Close() error { return nil }

// Empty returns an iterator with no items.
func Empty[T any]() Iterator[T] {
	return emptyIterator[T]{}
}
