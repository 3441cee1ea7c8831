package model

// CardContent is the visible content of a card, frozen when a drag starts
// and copied into the dragged card while it previews a drop target.
type CardContent struct {
	RemoteName string
	Title      string
	Status     string
	Info       string
	DriveType  string
}

// CardViewState is transient per-card UI state. It is never persisted.
type CardViewState struct {
	State   CardState
	Editing bool

	// Preview holds the hovered target's content while this card is the drag source
	Preview *CardContent
}

// IsIdle reports whether the card renders its own content with no interaction in progress
func (v CardViewState) IsIdle() bool {
	return v.State == CardStateIdle && !v.Editing && v.Preview == nil
}
