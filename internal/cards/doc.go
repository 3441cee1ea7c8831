// Package cards holds the ordered list of remote cards and the drag, preview
// and edit state machine behind it. It has no UI dependencies.
package cards
