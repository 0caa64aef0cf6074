package iterator

// Iterator yields a finite sequence of items. The initial status of a
// newly created iterator is Initial; the first Next moves it to the first
// item. Iterators are not designed for concurrent usage.
type Iterator[T any] interface {
	// Next moves to next item. It returns whether such item exists.
	Next() bool

	// Item returns current item. The behaviour is undefined if the last
	// call to Next returned false.
	Item() T

	// Err returns error we encounter so far.
	Err() error

	// Close releases any resources held by this iterator, and returns
	// any error it encounters so far. The behaviour is undefined if you
	// call any methods after this iterator has been closed.
	Close() error
}
