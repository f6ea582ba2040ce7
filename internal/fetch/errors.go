package fetch

import (
	"errors"
	"fmt"
)

// ErrNoEligibleComments is returned when a payload yields no comment long enough to analyze.
var ErrNoEligibleComments = errors.New("no valid comments found in the API response. Expected an array of comments or objects with text fields")

// FetchError describes a transport failure or a non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int   // Zero when the request never got a response
	Err        error // Underlying transport error, if any
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
