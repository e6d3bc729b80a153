package summary

import (
	"fmt"
	"time"
)

// FetchError reports a failed joint fetch. Resource names the collection
// whose request failed first ("users" or "roles").
type FetchError struct {
	Resource string
	At       time.Time
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
