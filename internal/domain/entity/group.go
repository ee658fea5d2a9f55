package entity

import (
	"slices"
	"strings"
)

// Group is a named membership used by the secondary permission surface.
// Base groups mirror the role; overlay groups are granted independently.
type Group string

const (
	GroupEmployee Group = "EMPLOYEE"
	GroupManager  Group = "MANAGER"
	GroupHR       Group = "HR"

	GroupAuditor       Group = "AUDITOR"
	GroupSecurityAdmin Group = "SECURITY_ADMIN"
	GroupSupport       Group = "SUPPORT"
	GroupHRAdmin       Group = "HR_ADMIN"
)

func (g Group) String() string {
	return string(g)
}

// IsBase reports whether the group is a projection of a role.
func (g Group) IsBase() bool {
	switch g {
	case GroupEmployee, GroupManager, GroupHR:
		return true
	default:
		return false
	}
}

// IsOverlay reports whether the group can be granted independently of role.
func (g Group) IsOverlay() bool {
	switch g {
	case GroupAuditor, GroupSecurityAdmin, GroupSupport, GroupHRAdmin:
		return true
	default:
		return false
	}
}

func (g Group) IsValid() bool {
	return g.IsBase() || g.IsOverlay()
}

func ParseGroup(s string) (Group, bool) {
	group := Group(strings.ToUpper(strings.TrimSpace(s)))
	if !group.IsValid() {
		return "", false
	}

	return group, true
}

// BaseGroupFor returns the base group mirroring role. ADMIN has none.
func BaseGroupFor(role Role) (Group, bool) {
	switch role {
	case RoleEmployee:
		return GroupEmployee, true
	case RoleManager:
		return GroupManager, true
	case RoleHR:
		return GroupHR, true
	default:
		return "", false
	}
}

// Groups is a set-like slice of memberships.
type Groups []Group

func (gs Groups) Contains(group Group) bool {
	return slices.Contains(gs, group)
}

// SyncWithRole drops every base group, keeps overlays, then adds the base
// group for role. The result is sorted and free of duplicates.
func (gs Groups) SyncWithRole(role Role) Groups {
	synced := make(Groups, 0, len(gs)+1)
	for _, g := range gs {
		if g.IsOverlay() && !synced.Contains(g) {
			synced = append(synced, g)
		}
	}
	if base, ok := BaseGroupFor(role); ok {
		synced = append(synced, base)
	}
	slices.Sort(synced)

	return synced
}

// With returns a copy of gs including group.
func (gs Groups) With(group Group) Groups {
	if gs.Contains(group) {
		return slices.Clone(gs)
	}
	out := append(slices.Clone(gs), group)
	slices.Sort(out)

	return out
}

// Without returns a copy of gs excluding group.
func (gs Groups) Without(group Group) Groups {
	return slices.DeleteFunc(slices.Clone(gs), func(g Group) bool { return g == group })
}

func (gs Groups) ToStrings() []string {
	result := make([]string, len(gs))
	for i, g := range gs {
		result[i] = g.String()
	}

	return result
}

// GroupsFromStrings filters out unknown names.
func GroupsFromStrings(ss []string) Groups {
	result := make(Groups, 0, len(ss))
	for _, s := range ss {
		if g, ok := ParseGroup(s); ok && !result.Contains(g) {
			result = append(result, g)
		}
	}
	slices.Sort(result)

	return result
}
