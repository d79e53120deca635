package lifecycle

// Status is the position of a node in its lifecycle.
type Status uint8

const (
	Unmounted Status = iota
	Mounting
	Rendered
	Updating
	Unmounting
)

func (s Status) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Mounting:
		return "mounting"
	case Rendered:
		return "rendered"
	case Updating:
		return "updating"
	case Unmounting:
		return "unmounting"
	default:
		return "unknown"
	}
}

// Live reports whether a node in this status still accepts state updates.
func (s Status) Live() bool {
	return s == Mounting || s == Rendered || s == Updating
}
