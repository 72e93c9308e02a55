package storage

import (
	"encoding/json"
	"maps"
	"slices"

	"simple_cart/internal/domain"
)

// encodeItems writes the collection as a JSON array ordered by id.
func encodeItems(items domain.Items) ([]byte, error) {
	list := make([]*domain.Item, 0, len(items))
	for _, id := range slices.Sorted(maps.Keys(items)) {
		list = append(list, items[id])
	}
	return json.Marshal(list)
}

// decodeItems never fails: an unreadable payload is an empty collection and every
// element that is not a valid item is skipped. dropped counts what was discarded.
func decodeItems(data []byte) (items domain.Items, dropped int) {
	items = make(domain.Items)
	if len(data) == 0 {
		return items, 0
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return items, 1
	}

	for _, entry := range raw {
		var item domain.Item
		if err := json.Unmarshal(entry, &item); err != nil || !item.IsValid() {
			dropped++
			continue
		}
		items[item.ID()] = &item
	}
	return items, dropped
}
