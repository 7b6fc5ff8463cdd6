package model

import (
	"fmt"
	"time"
)

// ChangeType represents the kind of launcher change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// ItemChange represents a single change between two snapshots.
type ItemChange struct {
	Type    ChangeType           `json:"type"`
	TS      int64                `json:"ts"`
	AppID   string               `json:"app"`
	Item    *ItemView            `json:"item,omitempty"`    // For added: the full item
	Changes map[string][2]string `json:"changes,omitempty"` // For changed: field diffs
}

// DiffItems compares two snapshots and returns the changes.
// Items are matched by app id.
func DiffItems(prev, curr []ItemView) []ItemChange {
	prevMap := make(map[string]ItemView, len(prev))
	for _, it := range prev {
		prevMap[it.AppID] = it
	}
	currMap := make(map[string]ItemView, len(curr))
	for _, it := range curr {
		currMap[it.AppID] = it
	}

	var changes []ItemChange
	now := time.Now().Unix()

	for _, it := range curr {
		prevIt, existed := prevMap[it.AppID]
		if !existed {
			itCopy := it
			changes = append(changes, ItemChange{
				Type:  ChangeAdded,
				TS:    now,
				AppID: it.AppID,
				Item:  &itCopy,
			})
			continue
		}
		if diffs := diffItemProperties(prevIt, it); len(diffs) > 0 {
			changes = append(changes, ItemChange{
				Type:    ChangeChanged,
				TS:      now,
				AppID:   it.AppID,
				Changes: diffs,
			})
		}
	}

	for _, it := range prev {
		if _, exists := currMap[it.AppID]; !exists {
			changes = append(changes, ItemChange{
				Type:  ChangeRemoved,
				TS:    now,
				AppID: it.AppID,
			})
		}
	}

	return changes
}

// diffItemProperties compares two items and returns changed fields.
func diffItemProperties(prev, curr ItemView) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Name != curr.Name {
		diffs["name"] = [2]string{prev.Name, curr.Name}
	}
	if prev.State != curr.State {
		diffs["state"] = [2]string{prev.State.String(), curr.State.String()}
	}
	if prev.WindowCount != curr.WindowCount {
		diffs["windows"] = [2]string{
			fmt.Sprintf("%d", prev.WindowCount),
			fmt.Sprintf("%d", curr.WindowCount),
		}
	}
	if prev.Favorite != curr.Favorite {
		diffs["favorite"] = [2]string{
			fmt.Sprintf("%v", prev.Favorite),
			fmt.Sprintf("%v", curr.Favorite),
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
