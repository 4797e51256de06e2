package room

import "strings"

// Equipment is an ordered list of equipment names. The model keeps it as a
// native slice; persistence and the API serialize it at their boundaries.
type Equipment []string

func NewEquipment(items []string) Equipment {
	eq := make(Equipment, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		eq = append(eq, item)
	}
	return eq
}

func (e Equipment) Contains(item string) bool {
	for _, have := range e {
		if strings.EqualFold(have, item) {
			return true
		}
	}
	return false
}
