package tennis

import "errors"

// ErrInvalidArgument is returned when a caller hands the rules layer a record
// that is missing fields or carries values outside their domain.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrStatusChanged is returned when a match is no longer in the processing
// status a transition expects, usually because another run advanced it.
var ErrStatusChanged = errors.New("processing status changed")
