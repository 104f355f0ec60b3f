package pagerange

import "fmt"

// InvalidRangeError reports a malformed or out-of-bounds token in a page
// range expression.
type InvalidRangeError struct {
	Token  string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid page range: %s", e.Reason)
	}
	return fmt.Sprintf("invalid page range %q: %s", e.Token, e.Reason)
}
