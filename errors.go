package geodesic

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when a list operation's precondition
	// does not hold, e.g. erasing a window linked into another list.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidWindow is returned for degenerate or non-finite windows.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrCorrupt is returned by the Check methods when a list's links or
	// ordering are inconsistent.
	ErrCorrupt = errors.New("corrupt interval list")

	// Stop can be returned from a Do callback to end the traversal early
	// without an error.
	Stop = errors.New("stop")
)
