package entity

import "fmt"

// FetchError is returned when the doctor list cannot be retrieved from the
// upstream source. Message is meant to be shown to the user as is.
type FetchError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
