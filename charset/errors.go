package charset

import "fmt"

// RangeOutOfBoundsError is returned when a constructor is given a range
// violating 0 <= Min <= Max <= Maximum.
type RangeOutOfBoundsError struct {
	Range   CharRange
	Maximum int
}

func (e *RangeOutOfBoundsError) Error() string {
	return fmt.Sprintf("charset: range %s out of bounds for maximum %d", e.Range, e.Maximum)
}

// DomainMismatchError is returned when a binary operation is attempted
// between two CharSets with different Maximum values.
type DomainMismatchError struct {
	A, B int
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("charset: domain mismatch: maximum %d vs %d", e.A, e.B)
}
