package merge

import (
	"slices"
	"strings"

	"github.com/pimsync/pimsync/pkg/records"
)

// GroupResolver maps category names on one side to group-membership
// references on the other, using the destination store's group list. It
// never creates groups: a category with no corresponding group is skipped.
type GroupResolver struct {
	groups []records.Group
}

// NewGroupResolver creates a resolver over the destination store's groups.
func NewGroupResolver(groups []records.Group) *GroupResolver {
	return &GroupResolver{groups: groups}
}

// Lookup finds a group by display name, case-insensitively.
func (r *GroupResolver) Lookup(name string) (records.Group, bool) {
	for _, g := range r.groups {
		if strings.EqualFold(g.DisplayName, name) {
			return g, true
		}
	}
	return records.Group{}, false
}

// NameOf returns the display name for a membership reference, or empty when
// the id is not in the group list.
func (r *GroupResolver) NameOf(id string) string {
	for _, g := range r.groups {
		if g.ID == id {
			return g.DisplayName
		}
	}
	return ""
}

// Merge folds the source's category names into the destination contact's
// group membership and recomputes its category names from the resulting
// membership. Categories that resolve to no destination group are left
// alone; no group is ever invented.
func (r *GroupResolver) Merge(dst *records.ContactRecord, categories []string) bool {
	changed := false

	for _, name := range categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		group, ok := r.Lookup(name)
		if !ok {
			continue
		}
		if !slices.Contains(dst.GroupIDs, group.ID) {
			dst.GroupIDs = append(dst.GroupIDs, group.ID)
			changed = true
		}
	}

	names := make([]string, 0, len(dst.GroupIDs))
	for _, id := range dst.GroupIDs {
		if name := r.NameOf(id); name != "" {
			names = append(names, name)
		}
	}
	if !slices.Equal(dst.Categories, names) {
		dst.Categories = names
		changed = true
	}

	return changed
}
