package cache

// UpdateLists rewrites every cached []T under entity. fn receives a copy.
func UpdateLists[T any](c *Client, entity string, fn func(key Key, items []T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Entity != entity || !e.hasData {
			continue
		}
		items, ok := e.data.([]T)
		if !ok {
			continue
		}
		cp := make([]T, len(items))
		copy(cp, items)
		e.data = fn(k, cp)
		e.gen++
	}
}

// Upsert replaces the item with the same id or appends it. The result holds
// the id exactly once.
func Upsert[T any](items []T, item T, id func(T) string) []T {
	want := id(item)
	out := make([]T, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if id(it) != want {
			out = append(out, it)
			continue
		}
		if !replaced {
			out = append(out, item)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, item)
	}
	return out
}

func RemoveByID[T any](items []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}
