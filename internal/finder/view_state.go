package finder

// ViewState is what the result panel shows.
type ViewState int

const (
	ViewPopulated ViewState = iota
	ViewEmpty
	ViewLoading
	ViewError
)

func (v ViewState) String() string {
	switch v {
	case ViewError:
		return "error"
	case ViewLoading:
		return "loading"
	case ViewEmpty:
		return "empty"
	default:
		return "populated"
	}
}

// SelectView picks exactly one view: an error wins over loading, loading
// wins over an empty result.
func SelectView(err error, loading bool, visible int) ViewState {
	switch {
	case err != nil:
		return ViewError
	case loading:
		return ViewLoading
	case visible == 0:
		return ViewEmpty
	default:
		return ViewPopulated
	}
}
