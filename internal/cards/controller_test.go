package cards

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ytget/cloud-drives/internal/model"
)

type recordingPersister struct {
	orders [][]string
	err    error
}

func (p *recordingPersister) SetDriveOrder(order []string) error {
	p.orders = append(p.orders, append([]string{}, order...))
	return p.err
}

func entries(ids ...string) []model.RemoteEntry {
	out := make([]model.RemoteEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.RemoteEntry{
			RemoteName:  id,
			DisplayName: "Drive " + id,
			DriveType:   model.DriveTypeGoogleDrive,
			Enabled:     true,
		})
	}
	return out
}

func newTestController(t *testing.T, ids ...string) (*Controller, *recordingPersister) {
	t.Helper()
	p := &recordingPersister{}
	c := New(p)
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	c.Load(entries(ids...), nil)
	return c, p
}

func TestLoad_ArrangesAndFiltersDisabled(t *testing.T) {
	list := entries("a", "b", "c", "d")
	list[2].Enabled = false

	c := New(nil)
	c.Load(list, []string{"d", "missing", "b"})

	expected := []string{"d", "b", "a"}
	if got := c.Order(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Order() = %v, expected %v", got, expected)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", c.Len())
	}
}

func TestDrop_Reorders(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		target   string
		expected []string
	}{
		{"forward two", "A", "C", []string{"B", "C", "A", "D"}},
		{"backward", "D", "B", []string{"A", "D", "B", "C"}},
		{"to end", "A", "D", []string{"B", "C", "D", "A"}},
		{"to start", "C", "A", []string{"C", "A", "B", "D"}},
		{"adjacent", "B", "C", []string{"A", "C", "B", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p := newTestController(t, "A", "B", "C", "D")

			if !c.BeginDrag(tt.source) {
				t.Fatalf("BeginDrag(%s) refused", tt.source)
			}
			c.Enter(tt.target)
			moved, err := c.Drop(tt.target)
			if err != nil {
				t.Fatalf("Drop() error = %v", err)
			}
			if !moved {
				t.Fatal("Drop() reported no move")
			}
			if got := c.Order(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Order() = %v, expected %v", got, tt.expected)
			}
			if len(p.orders) != 1 || !reflect.DeepEqual(p.orders[0], tt.expected) {
				t.Errorf("persisted %v, expected one save of %v", p.orders, tt.expected)
			}
			for _, id := range c.Order() {
				if !c.View(id).IsIdle() {
					t.Errorf("card %s not idle after drop: %+v", id, c.View(id))
				}
			}
			if _, dragging := c.Dragging(); dragging {
				t.Error("drag session should be cleared")
			}
		})
	}
}

func TestDrop_NoOps(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		editing string
		enter   string
	}{
		{"self", "B", "", ""},
		{"empty", "", "", ""},
		{"unknown", "zzz", "", ""},
		{"never entered", "C", "", ""},
		{"editing target", "C", "C", "C"},
		{"other than entered", "C", "", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p := newTestController(t, "A", "B", "C")

			if tt.editing != "" {
				if err := c.EnterEdit(tt.editing); err != nil {
					t.Fatalf("EnterEdit() error = %v", err)
				}
			}
			c.BeginDrag("B")
			if tt.enter != "" {
				c.Enter(tt.enter)
			}
			moved, err := c.Drop(tt.target)
			if err != nil || moved {
				t.Errorf("Drop(%q) = %v, %v, expected false, nil", tt.target, moved, err)
			}
			if got := c.Order(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
				t.Errorf("order changed: %v", got)
			}
			if len(p.orders) != 0 {
				t.Errorf("no-op drop persisted %v", p.orders)
			}
			if !c.View("B").IsIdle() {
				t.Errorf("source not idle: %+v", c.View("B"))
			}
		})
	}
}

func TestDrop_WithoutDrag(t *testing.T) {
	c, p := newTestController(t, "A", "B")

	moved, err := c.Drop("B")
	if moved || err != nil {
		t.Errorf("Drop() without drag = %v, %v", moved, err)
	}
	if len(p.orders) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestDrop_PersistError(t *testing.T) {
	c, p := newTestController(t, "A", "B")
	p.err = errors.New("disk full")

	c.BeginDrag("A")
	c.Enter("B")
	moved, err := c.Drop("B")
	if !moved {
		t.Error("reorder should still apply in memory")
	}
	if err == nil || !errors.Is(err, p.err) {
		t.Errorf("expected wrapped persist error, got %v", err)
	}
	if got := c.Order(); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("Order() = %v", got)
	}
}

func TestPreview_EnterLeave(t *testing.T) {
	c, _ := newTestController(t, "A", "B", "C")
	c.SetStatus(model.StatusSnapshot{
		RemoteName:  "C",
		Total:       "15 GiB",
		Used:        "1 GiB",
		Free:        "14 GiB",
		Objects:     model.UnknownValue,
		LastUpdated: c.now().Add(-2 * time.Hour),
	})

	ownA, _ := c.Content("A")
	ownC, _ := c.Content("C")

	c.BeginDrag("A")
	shown, dropZone := c.Display("A")
	if dropZone || shown != ownA {
		t.Errorf("source should show its frozen content, got %+v", shown)
	}

	c.Enter("C")
	if c.View("C").State != model.CardStateDragTarget {
		t.Errorf("target state = %v", c.View("C").State)
	}
	shown, _ = c.Display("A")
	if shown != ownC {
		t.Errorf("source should preview target content %+v, got %+v", ownC, shown)
	}
	if _, dropZone := c.Display("C"); !dropZone {
		t.Error("target should render as drop zone")
	}

	c.Leave("C")
	if c.View("C").State != model.CardStateIdle {
		t.Errorf("target should be idle after leave, got %v", c.View("C").State)
	}
	shown, _ = c.Display("A")
	if shown != ownA {
		t.Errorf("source should revert to frozen content, got %+v", shown)
	}
	if c.View("A").State != model.CardStateDragSource {
		t.Error("source stays in drag until drop or cancel")
	}
}

func TestPreview_SwitchTarget(t *testing.T) {
	c, _ := newTestController(t, "A", "B", "C")

	c.BeginDrag("A")
	c.Enter("B")
	c.Enter("C")

	if c.View("B").State != model.CardStateIdle {
		t.Errorf("previous target should be idle, got %v", c.View("B").State)
	}
	if c.View("C").State != model.CardStateDragTarget {
		t.Errorf("new target state = %v", c.View("C").State)
	}
	preview := c.View("A").Preview
	if preview == nil || preview.RemoteName != "C" {
		t.Errorf("preview should come from C, got %+v", preview)
	}

	// Leaving a card that is not the current target changes nothing
	c.Leave("B")
	if c.View("C").State != model.CardStateDragTarget {
		t.Error("stale leave should not reset current target")
	}
}

func TestEnter_Self(t *testing.T) {
	c, _ := newTestController(t, "A", "B")

	c.BeginDrag("A")
	c.Enter("A")
	if c.View("A").State != model.CardStateDragSource || c.View("A").Preview != nil {
		t.Errorf("hovering the source over itself should not preview: %+v", c.View("A"))
	}
}

func TestCancel(t *testing.T) {
	c, p := newTestController(t, "A", "B")

	c.BeginDrag("A")
	c.Enter("B")
	c.Cancel()

	for _, id := range []string{"A", "B"} {
		if !c.View(id).IsIdle() {
			t.Errorf("card %s not idle after cancel: %+v", id, c.View(id))
		}
	}
	if len(p.orders) != 0 {
		t.Error("cancel should not persist")
	}
	if !c.BeginDrag("B") {
		t.Error("a new drag should be possible after cancel")
	}
}

func TestEditAndDragExclusion(t *testing.T) {
	c, _ := newTestController(t, "A", "B")

	if err := c.EnterEdit("A"); err != nil {
		t.Fatalf("EnterEdit() error = %v", err)
	}
	if c.BeginDrag("A") {
		t.Error("editing card must not start a drag")
	}

	c.BeginDrag("B")
	c.Enter("A")
	if c.View("A").State != model.CardStateIdle {
		t.Error("editing card must not become a drop target")
	}
	if err := c.EnterEdit("B"); !errors.Is(err, ErrCardBusy) {
		t.Errorf("EnterEdit() on dragged card = %v, expected ErrCardBusy", err)
	}

	if c.BeginDrag("A") {
		t.Error("second concurrent drag must be refused")
	}

	c.ExitEdit("A")
	if c.View("A").Editing {
		t.Error("ExitEdit() should leave edit mode")
	}
}

func TestUnknownIDs(t *testing.T) {
	c, _ := newTestController(t, "A")

	if c.BeginDrag("nope") {
		t.Error("BeginDrag() on unknown id should fail")
	}
	if err := c.EnterEdit("nope"); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("EnterEdit() = %v, expected ErrUnknownCard", err)
	}
	if c.SetStatus(model.StatusSnapshot{RemoteName: "nope"}) {
		t.Error("SetStatus() for unknown card should report false")
	}
	if c.MarkUpdating("nope") {
		t.Error("MarkUpdating() for unknown card should report false")
	}
	if c.Remove("nope") {
		t.Error("Remove() for unknown card should report false")
	}
	if !c.View("nope").IsIdle() {
		t.Error("unknown ids read as idle")
	}
	c.ExitEdit("nope")
	c.Leave("nope")
}

func TestRemove_DuringDrag(t *testing.T) {
	c, p := newTestController(t, "A", "B", "C")

	c.BeginDrag("A")
	c.Enter("B")
	c.Remove("A")

	if _, dragging := c.Dragging(); dragging {
		t.Error("removing the source should end the drag")
	}
	if c.View("B").State != model.CardStateIdle {
		t.Error("target should be idle after its source is removed")
	}
	if moved, _ := c.Drop("C"); moved {
		t.Error("drop after removal must be a no-op")
	}
	if len(p.orders) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestAdd(t *testing.T) {
	c, _ := newTestController(t, "A")

	if !c.Add(model.NewRemoteEntry("B")) {
		t.Fatal("Add() failed")
	}
	if c.Add(model.NewRemoteEntry("A:")) {
		t.Error("duplicate Add() should fail")
	}
	if c.Add(model.RemoteEntry{}) {
		t.Error("empty id should be rejected")
	}
	if got := c.Order(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Order() = %v", got)
	}
}

func TestSetStatus(t *testing.T) {
	c, _ := newTestController(t, "A")

	c.MarkUpdating("A")
	content, _ := c.Content("A")
	if content.Status != StatusUpdating {
		t.Errorf("status = %q, expected %q", content.Status, StatusUpdating)
	}

	snap := model.NewStatusSnapshot("A")
	snap.Error = "boom"
	snap.LastUpdated = c.now()
	if !c.SetStatus(snap) {
		t.Fatal("SetStatus() failed")
	}
	card, _ := c.Card("A")
	if card.Fetch != model.FetchStatusError {
		t.Errorf("Fetch = %v, expected Error", card.Fetch)
	}
	content, _ = c.Content("A")
	if content.Status != "Error: boom" {
		t.Errorf("status = %q", content.Status)
	}
}

func TestStatusLine(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ok := model.NewStatusSnapshot("x")
	ok.LastUpdated = now.Add(-90 * time.Minute)

	tests := []struct {
		name     string
		fetch    model.FetchStatus
		status   model.StatusSnapshot
		expected string
	}{
		{"updating", model.FetchStatusUpdating, ok, StatusUpdating},
		{"updated", model.FetchStatusUpdated, ok, "Last updated: 1 hour, 30 minutes ago"},
		{"never", model.FetchStatusPending, model.NewStatusSnapshot("x"), "Last updated: Never"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusLine(tt.fetch, tt.status, now); got != tt.expected {
				t.Errorf("StatusLine() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCallbacks(t *testing.T) {
	c, _ := newTestController(t, "A", "B")

	var viewed []string
	var orders [][]string
	c.SetCallbacks(
		func(ids ...string) { viewed = append(viewed, ids...) },
		func(order []string) { orders = append(orders, order) },
	)

	c.BeginDrag("A")
	c.Enter("B")
	c.Drop("B")

	if len(viewed) == 0 {
		t.Error("view callback never fired")
	}
	if len(orders) != 1 || !reflect.DeepEqual(orders[0], []string{"B", "A"}) {
		t.Errorf("order callback = %v", orders)
	}
}
