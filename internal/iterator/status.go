package iterator

// Status defines statuses for iterator.
type Status int

const (
	// Initial is the initial status of iterator.
	Initial Status = iota
	// Invalid specifies that iterator encounters an error which can be
	// retrieved through Err().
	Invalid
	// Exhausted specifies that iterator moved past its last item.
	Exhausted
	// Closed specifies that iterator has been closed.
	Closed
	// Valid specifies that iterator has an item retrieved in its Item.
	Valid
)

func (s Status) String() string {
	switch s {
	case Initial:
		return "initial"
	case Invalid:
		return "invalid"
	case Exhausted:
		return "exhausted"
	case Closed:
		return "closed"
	case Valid:
		return "valid"
	}
	return "unknown"
}
