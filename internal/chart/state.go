// Package chart turns dashboard data into drawable series and renders them
// for the terminal. Nothing here fetches or mutates data.
package chart

// Kind tags which variant a State holds.
type Kind int

const (
	KindLoading Kind = iota
	KindFailed
	KindReady
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindFailed:
		return "failed"
	case KindReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State is what a chart is asked to show: still loading, failed with a
// message, or ready with data. Exactly one variant is set.
type State[T any] struct {
	kind    Kind
	message string
	data    T
}

func Loading[T any]() State[T] {
	return State[T]{kind: KindLoading}
}

func Failed[T any](message string) State[T] {
	return State[T]{kind: KindFailed, message: message}
}

func Ready[T any](data T) State[T] {
	return State[T]{kind: KindReady, data: data}
}

func (s State[T]) Kind() Kind { return s.kind }

// Message is the error text of a failed state.
func (s State[T]) Message() string { return s.message }

// Data is the payload of a ready state.
func (s State[T]) Data() T { return s.data }
