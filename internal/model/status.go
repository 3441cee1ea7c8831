package model

// FetchStatus represents the refresh state of a single remote card
type FetchStatus string

const (
	// FetchStatusPending means no refresh has been requested yet
	FetchStatusPending FetchStatus = "Pending"

	// FetchStatusUpdating means an rclone call is in flight
	FetchStatusUpdating FetchStatus = "Updating"

	// FetchStatusUpdated means the last refresh returned usage data
	FetchStatusUpdated FetchStatus = "Updated"

	// FetchStatusError means the last refresh failed
	FetchStatusError FetchStatus = "Error"
)

// String returns the string representation of FetchStatus
func (fs FetchStatus) String() string {
	return string(fs)
}

// IsActive returns true while a refresh is running
func (fs FetchStatus) IsActive() bool {
	return fs == FetchStatusUpdating
}

// IsFinished returns true if the last refresh produced a result (data or error)
func (fs FetchStatus) IsFinished() bool {
	return fs == FetchStatusUpdated || fs == FetchStatusError
}

// CardState is the drag state of a card in the list
type CardState string

const (
	// CardStateIdle renders the card's own entry and status
	CardStateIdle CardState = "Idle"

	// CardStateDragSource marks the card currently being dragged
	CardStateDragSource CardState = "DragSource"

	// CardStateDragTarget marks the card under the pointer during a drag
	CardStateDragTarget CardState = "DragTarget"
)

// String returns the string representation of CardState
func (cs CardState) String() string {
	return string(cs)
}

// IsDragging returns true if the card takes part in a drag gesture
func (cs CardState) IsDragging() bool {
	return cs == CardStateDragSource || cs == CardStateDragTarget
}
