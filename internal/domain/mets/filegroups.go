package mets

import "sort"

// FileGroups is an ordered mapping of file group name to file identifier for one page.
type FileGroups struct {
	names []string
	ids   map[string]string
}

// Set adds or replaces the file of group. New groups keep insertion order.
func (g *FileGroups) Set(group, fileID string) {
	if g.ids == nil {
		g.ids = make(map[string]string)
	}
	if _, ok := g.ids[group]; !ok {
		g.names = append(g.names, group)
	}
	g.ids[group] = fileID
}

// Get returns the file identifier for group.
func (g FileGroups) Get(group string) (string, bool) {
	id, ok := g.ids[group]
	return id, ok
}

// Names returns group names in insertion order.
func (g FileGroups) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len returns the number of groups mapped for the page.
func (g FileGroups) Len() int { return len(g.names) }

// Presence describes the outcome of a file group lookup.
type Presence int

const (
	// PresenceFound means the page has a file in the group.
	PresenceFound Presence = iota
	// PresenceAbsent means the group exists but the page has no file in it.
	PresenceAbsent
	// PresenceUnknownGroup means the file section does not declare the group.
	PresenceUnknownGroup
)

func (p Presence) String() string {
	switch p {
	case PresenceFound:
		return "found"
	case PresenceAbsent:
		return "absent"
	case PresenceUnknownGroup:
		return "unknown_group"
	default:
		return "invalid"
	}
}

// FileGroupNames returns the groups declared by the file section, sorted.
func (d *Document) FileGroupNames() []string {
	out := make([]string, 0, len(d.fileGroups))
	for g := range d.fileGroups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// FileFor looks up the file of a page in one group.
func (d *Document) FileFor(pageID, group string) (File, Presence) {
	if !d.HasFileGroup(group) {
		return File{}, PresenceUnknownGroup
	}
	u, ok := d.physicalStructureInfo[pageID]
	if !ok {
		return File{}, PresenceAbsent
	}
	fileID, ok := u.Files.Get(group)
	if !ok {
		return File{}, PresenceAbsent
	}
	f, ok := d.files[fileID]
	if !ok {
		return File{}, PresenceAbsent
	}
	return f, PresenceFound
}

// FirstFile returns the file of the first group in groups that the page has.
func (d *Document) FirstFile(pageID string, groups []string) (File, string, bool) {
	for _, g := range groups {
		if f, p := d.FileFor(pageID, g); p == PresenceFound {
			return f, g, true
		}
	}
	return File{}, "", false
}
