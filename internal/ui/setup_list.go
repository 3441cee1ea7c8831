package ui

import "github.com/ytget/cloud-drives/internal/model"

// setupItem is one row of the setup dialog
type setupItem struct {
	Remote  string
	Checked bool
}

// setupList holds the rows of the setup dialog. Existing drives come first,
// in saved order and checked; remotes reported by rclone that are not yet
// configured follow, unchecked.
type setupList struct {
	items    []setupItem
	existing map[string]model.RemoteEntry
}

func newSetupList(available []string, existing []model.RemoteEntry, order []string) *setupList {
	l := &setupList{existing: make(map[string]model.RemoteEntry, len(existing))}

	for _, e := range model.ArrangeEntries(existing, order) {
		if _, dup := l.existing[e.RemoteName]; dup || e.RemoteName == "" {
			continue
		}
		l.existing[e.RemoteName] = e
		l.items = append(l.items, setupItem{Remote: e.RemoteName, Checked: e.Enabled})
	}
	for _, remote := range available {
		name := model.NormalizeRemoteName(remote)
		if name == "" || l.index(name) >= 0 {
			continue
		}
		l.items = append(l.items, setupItem{Remote: name})
	}
	return l
}

// Len returns the number of rows
func (l *setupList) Len() int {
	return len(l.items)
}

// Item returns row i
func (l *setupList) Item(i int) setupItem {
	return l.items[i]
}

// SetChecked toggles row i
func (l *setupList) SetChecked(i int, checked bool) {
	if i >= 0 && i < len(l.items) {
		l.items[i].Checked = checked
	}
}

// CheckIfListed checks the row for name and reports whether it exists
func (l *setupList) CheckIfListed(name string) bool {
	i := l.index(model.NormalizeRemoteName(name))
	if i < 0 {
		return false
	}
	l.items[i].Checked = true
	return true
}

// AddChecked appends a validated remote as a checked row
func (l *setupList) AddChecked(name string) {
	name = model.NormalizeRemoteName(name)
	if name == "" || l.CheckIfListed(name) {
		return
	}
	l.items = append(l.items, setupItem{Remote: name, Checked: true})
}

// Result returns the entries to show and the previously configured remotes
// that were unchecked. Existing entries keep their label and type; new ones
// get guessed values.
func (l *setupList) Result() (selected []model.RemoteEntry, removed []string) {
	for _, item := range l.items {
		existing, known := l.existing[item.Remote]
		switch {
		case item.Checked && known:
			existing.Enabled = true
			selected = append(selected, existing)
		case item.Checked:
			selected = append(selected, model.NewRemoteEntry(item.Remote))
		case known:
			removed = append(removed, item.Remote)
		}
	}
	return selected, removed
}

func (l *setupList) index(name string) int {
	for i, item := range l.items {
		if item.Remote == name {
			return i
		}
	}
	return -1
}

// mergeEntries returns the drives to persist: the shown entries in display
// order followed by stored entries that are disabled and not shown
func mergeEntries(stored, shown []model.RemoteEntry) []model.RemoteEntry {
	merged := append([]model.RemoteEntry{}, shown...)
	visible := make(map[string]bool, len(shown))
	for _, e := range shown {
		visible[e.RemoteName] = true
	}
	for _, e := range stored {
		if !e.Enabled && !visible[e.RemoteName] {
			merged = append(merged, e)
		}
	}
	return merged
}
