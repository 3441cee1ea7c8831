package model

// ArrangeEntries returns entries sorted by order: ids listed in order come
// first, then every remaining entry in its original position. Ids in order
// with no matching entry and repeated ids are ignored.
func ArrangeEntries(entries []RemoteEntry, order []string) []RemoteEntry {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, exists := index[e.RemoteName]; !exists {
			index[e.RemoteName] = i
		}
	}

	arranged := make([]RemoteEntry, 0, len(entries))
	placed := make(map[string]bool, len(entries))
	for _, id := range order {
		i, exists := index[id]
		if !exists || placed[id] {
			continue
		}
		arranged = append(arranged, entries[i])
		placed[id] = true
	}
	for _, e := range entries {
		if placed[e.RemoteName] {
			continue
		}
		arranged = append(arranged, e)
		placed[e.RemoteName] = true
	}
	return arranged
}

// EnabledEntries keeps only the entries that should be shown as cards
func EnabledEntries(entries []RemoteEntry) []RemoteEntry {
	enabled := make([]RemoteEntry, 0, len(entries))
	for _, e := range entries {
		if e.Enabled {
			enabled = append(enabled, e)
		}
	}
	return enabled
}

// MoveID moves id to the position target occupies before the move.
// It returns a new slice and false when either id is missing or they are equal.
func MoveID(order []string, id, target string) ([]string, bool) {
	if id == target {
		return order, false
	}
	from, to := indexOf(order, id), indexOf(order, target)
	if from < 0 || to < 0 {
		return order, false
	}

	moved := make([]string, 0, len(order))
	moved = append(moved, order[:from]...)
	moved = append(moved, order[from+1:]...)

	// Inserting at the target's pre-drop index places the dragged id exactly
	// where the target was, shifting everything between them by one.
	moved = append(moved[:to], append([]string{id}, moved[to:]...)...)
	return moved, true
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
