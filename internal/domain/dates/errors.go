package dates

import "errors"

// Sentinel kinds for date parsing errors.
var (
	ErrUnparseable = errors.New("unparseable date")
)
