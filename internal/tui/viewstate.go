package tui

// Phase is the lifecycle stage of a page's data.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseEmpty
	PhaseError
	PhaseLoaded
)

// ViewState is the data a page renders from. Reason is set only in
// PhaseError and Data only in PhaseLoaded.
type ViewState[T any] struct {
	Phase  Phase
	Reason string
	Data   T
}

func Loading[T any]() ViewState[T] { return ViewState[T]{Phase: PhaseLoading} }

func Empty[T any]() ViewState[T] { return ViewState[T]{Phase: PhaseEmpty} }

func Failed[T any](reason string) ViewState[T] {
	return ViewState[T]{Phase: PhaseError, Reason: reason}
}

func Loaded[T any](data T) ViewState[T] {
	return ViewState[T]{Phase: PhaseLoaded, Data: data}
}
