package cards

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/cloud-drives/internal/model"
)

var (
	// ErrUnknownCard is returned for ids that have no card
	ErrUnknownCard = errors.New("unknown card")

	// ErrCardBusy is returned when editing a card that takes part in a drag
	ErrCardBusy = errors.New("card is being dragged")
)

// Status line texts
const (
	StatusUpdating    = "Updating..."
	StatusErrorPrefix = "Error: "
	StatusUpdatedFmt  = "Last updated: %s"
)

// OrderPersister stores the display order after a committed reorder
type OrderPersister interface {
	SetDriveOrder(order []string) error
}

// Card is one remote in the list with its latest status
type Card struct {
	Entry  model.RemoteEntry
	Status model.StatusSnapshot
	Fetch  model.FetchStatus

	view model.CardViewState
}

// ID returns the remote name identifying the card
func (c *Card) ID() string {
	return c.Entry.RemoteName
}

// View returns the card's transient UI state
func (c *Card) View() model.CardViewState {
	return c.view
}

// dragSession tracks one drag gesture
type dragSession struct {
	sourceID string
	captured model.CardContent
	targetID string // current hover target, empty when none
}

// Controller owns the ordered card list and the drag/edit state machine.
// It is not safe for concurrent use: all calls are expected on the UI goroutine.
type Controller struct {
	cards     []*Card
	index     map[string]*Card
	persister OrderPersister
	drag      *dragSession
	now       func() time.Time

	onView  func(ids ...string)
	onOrder func(order []string)
}

// New creates an empty controller. persister may be nil.
func New(persister OrderPersister) *Controller {
	return &Controller{
		index:     make(map[string]*Card),
		persister: persister,
		now:       time.Now,
	}
}

// SetCallbacks sets the listeners for view-state and order changes
func (c *Controller) SetCallbacks(onView func(ids ...string), onOrder func(order []string)) {
	c.onView = onView
	c.onOrder = onOrder
}

// Load replaces all cards with the enabled entries arranged by order
func (c *Controller) Load(entries []model.RemoteEntry, order []string) {
	c.drag = nil
	c.cards = nil
	c.index = make(map[string]*Card)

	for _, e := range model.EnabledEntries(model.ArrangeEntries(entries, order)) {
		c.append(e)
	}
	c.notifyOrder()
}

// Add appends a card for entry. It returns false if the id already exists.
func (c *Controller) Add(entry model.RemoteEntry) bool {
	if entry.RemoteName == "" {
		return false
	}
	if _, exists := c.index[entry.RemoteName]; exists {
		return false
	}
	c.append(entry)
	c.notifyOrder()
	return true
}

func (c *Controller) append(entry model.RemoteEntry) {
	if _, exists := c.index[entry.RemoteName]; exists {
		return
	}
	card := &Card{
		Entry:  entry,
		Status: model.NewStatusSnapshot(entry.RemoteName),
		Fetch:  model.FetchStatusPending,
		view:   model.CardViewState{State: model.CardStateIdle},
	}
	c.cards = append(c.cards, card)
	c.index[entry.RemoteName] = card
}

// Remove deletes a card. A drag involving it is cancelled.
func (c *Controller) Remove(id string) bool {
	if _, exists := c.index[id]; !exists {
		return false
	}
	if c.drag != nil && (c.drag.sourceID == id || c.drag.targetID == id) {
		c.Cancel()
	}

	delete(c.index, id)
	for i, card := range c.cards {
		if card.ID() == id {
			c.cards = append(c.cards[:i], c.cards[i+1:]...)
			break
		}
	}
	c.notifyOrder()
	return true
}

// UpdateEntry replaces the entry of an existing card, e.g. after an edit
func (c *Controller) UpdateEntry(entry model.RemoteEntry) bool {
	card, exists := c.index[entry.RemoteName]
	if !exists {
		return false
	}
	card.Entry = entry
	c.notifyView(entry.RemoteName)
	return true
}

// Order returns the card ids in display order
func (c *Controller) Order() []string {
	order := make([]string, 0, len(c.cards))
	for _, card := range c.cards {
		order = append(order, card.ID())
	}
	return order
}

// Len returns the number of cards
func (c *Controller) Len() int {
	return len(c.cards)
}

// Card returns a card by id
func (c *Controller) Card(id string) (*Card, bool) {
	card, exists := c.index[id]
	return card, exists
}

// Cards returns the cards in display order
func (c *Controller) Cards() []*Card {
	return append([]*Card{}, c.cards...)
}

// Entries returns the entries of all cards in display order
func (c *Controller) Entries() []model.RemoteEntry {
	entries := make([]model.RemoteEntry, 0, len(c.cards))
	for _, card := range c.cards {
		entries = append(entries, card.Entry)
	}
	return entries
}

// MarkUpdating flags a card as having a refresh in flight
func (c *Controller) MarkUpdating(id string) bool {
	card, exists := c.index[id]
	if !exists {
		return false
	}
	card.Fetch = model.FetchStatusUpdating
	c.notifyView(id)
	return true
}

// SetStatus attaches a fetch result. Results for removed cards are discarded
// and reported with false.
func (c *Controller) SetStatus(snapshot model.StatusSnapshot) bool {
	card, exists := c.index[snapshot.RemoteName]
	if !exists {
		return false
	}
	card.Status = snapshot
	card.Fetch = snapshot.FetchStatus()
	c.notifyView(card.ID())
	return true
}

// Content returns the card's own visible content
func (c *Controller) Content(id string) (model.CardContent, bool) {
	card, exists := c.index[id]
	if !exists {
		return model.CardContent{}, false
	}
	return c.describe(card), true
}

// Display returns what the card should render now. dropZone is true while
// the card is the hover target of a drag.
func (c *Controller) Display(id string) (content model.CardContent, dropZone bool) {
	card, exists := c.index[id]
	if !exists {
		return model.CardContent{}, false
	}

	switch card.view.State {
	case model.CardStateDragTarget:
		return c.describe(card), true
	case model.CardStateDragSource:
		if card.view.Preview != nil {
			return *card.view.Preview, false
		}
		if c.drag != nil && c.drag.sourceID == id {
			return c.drag.captured, false
		}
	}
	return c.describe(card), false
}

// View returns the transient state of a card; unknown ids read as idle
func (c *Controller) View(id string) model.CardViewState {
	if card, exists := c.index[id]; exists {
		return card.view
	}
	return model.CardViewState{State: model.CardStateIdle}
}

// Dragging returns the id of the card being dragged, if any
func (c *Controller) Dragging() (string, bool) {
	if c.drag == nil {
		return "", false
	}
	return c.drag.sourceID, true
}

// BeginDrag starts dragging id and freezes its visible content. It refuses
// unknown cards, cards in edit mode and a second concurrent drag.
func (c *Controller) BeginDrag(id string) bool {
	card, exists := c.index[id]
	if !exists || card.view.Editing || c.drag != nil {
		return false
	}

	c.drag = &dragSession{sourceID: id, captured: c.describe(card)}
	card.view.State = model.CardStateDragSource
	card.view.Preview = nil
	c.notifyView(id)
	return true
}

// Enter is called when the pointer moves over targetID during a drag
func (c *Controller) Enter(targetID string) {
	source, ok := c.activeSource()
	if !ok {
		return
	}
	if targetID == c.drag.targetID {
		return
	}
	if c.drag.targetID != "" {
		c.Leave(c.drag.targetID)
	}

	target, exists := c.index[targetID]
	if !exists || targetID == source.ID() || target.view.Editing {
		return
	}

	preview := c.describe(target)
	c.drag.targetID = targetID
	target.view.State = model.CardStateDragTarget
	source.view.Preview = &preview
	c.notifyView(source.ID(), targetID)
}

// Leave is called when the pointer leaves targetID without dropping
func (c *Controller) Leave(targetID string) {
	if c.drag == nil || targetID == "" || c.drag.targetID != targetID {
		return
	}

	changed := []string{targetID}
	if target, exists := c.index[targetID]; exists {
		target.view.State = model.CardStateIdle
	}
	if source, exists := c.index[c.drag.sourceID]; exists {
		source.view.Preview = nil
		changed = append(changed, source.ID())
	}
	c.drag.targetID = ""
	c.notifyView(changed...)
}

// Drop ends the drag over targetID. Only the card accepted by Enter counts as
// a target; anything else is handled like a release outside every card:
// state is cleaned up and nothing is persisted. Otherwise the dragged card
// takes the target's position and the new order is persisted.
func (c *Controller) Drop(targetID string) (bool, error) {
	source, ok := c.activeSource()
	if !ok {
		return false, nil
	}
	sourceID := source.ID()
	accepted := c.drag.targetID

	c.Cancel()
	if targetID == "" || targetID != accepted {
		return false, nil
	}
	order, moved := model.MoveID(c.Order(), sourceID, targetID)
	if !moved {
		return false, nil
	}

	reordered := make([]*Card, 0, len(order))
	for _, id := range order {
		reordered = append(reordered, c.index[id])
	}
	c.cards = reordered
	c.notifyOrder()

	if c.persister == nil {
		return true, nil
	}
	if err := c.persister.SetDriveOrder(order); err != nil {
		return true, fmt.Errorf("failed to persist order: %w", err)
	}
	return true, nil
}

// Cancel ends any drag and returns every involved card to idle
func (c *Controller) Cancel() {
	if c.drag == nil {
		return
	}

	var changed []string
	for _, id := range []string{c.drag.sourceID, c.drag.targetID} {
		card, exists := c.index[id]
		if !exists {
			continue
		}
		card.view.State = model.CardStateIdle
		card.view.Preview = nil
		changed = append(changed, id)
	}
	c.drag = nil
	c.notifyView(changed...)
}

// EnterEdit switches a card to inline editing
func (c *Controller) EnterEdit(id string) error {
	card, exists := c.index[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	if card.view.State.IsDragging() {
		return fmt.Errorf("%w: %s", ErrCardBusy, id)
	}
	card.view.Editing = true
	c.notifyView(id)
	return nil
}

// ExitEdit leaves inline editing
func (c *Controller) ExitEdit(id string) {
	card, exists := c.index[id]
	if !exists || !card.view.Editing {
		return
	}
	card.view.Editing = false
	c.notifyView(id)
}

// activeSource returns the dragged card, ending the drag if it has vanished
func (c *Controller) activeSource() (*Card, bool) {
	if c.drag == nil {
		return nil, false
	}
	source, exists := c.index[c.drag.sourceID]
	if !exists {
		c.Cancel()
		return nil, false
	}
	return source, true
}

// describe renders the card's own content
func (c *Controller) describe(card *Card) model.CardContent {
	return model.CardContent{
		RemoteName: card.ID(),
		Title:      card.Entry.Label(),
		Status:     StatusLine(card.Fetch, card.Status, c.now()),
		Info:       strings.Join(card.Status.SummaryLines(), "\n"),
		DriveType:  card.Entry.DriveType,
	}
}

// StatusLine returns the status text shown under a card's title
func StatusLine(fetch model.FetchStatus, status model.StatusSnapshot, now time.Time) string {
	switch {
	case fetch.IsActive():
		return StatusUpdating
	case status.HasError():
		return StatusErrorPrefix + status.Error
	default:
		return fmt.Sprintf(StatusUpdatedFmt, model.FormatRelativeTime(status.LastUpdated, now))
	}
}

func (c *Controller) notifyView(ids ...string) {
	if c.onView != nil && len(ids) > 0 {
		c.onView(ids...)
	}
}

func (c *Controller) notifyOrder() {
	if c.onOrder != nil {
		c.onOrder(c.Order())
	}
}
