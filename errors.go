package endb

import (
	"fmt"
)

// NotNumericError reports a Math call against a key whose stored value is
// not a number. The offending value is carried for logging.
type NotNumericError struct {
	Key   string
	Value any
}

func (e *NotNumericError) Error() string {
	return fmt.Sprintf("endb: math on %q: stored value of type %T is not numeric", e.Key, e.Value)
}
