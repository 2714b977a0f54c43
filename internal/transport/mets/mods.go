package mets

import (
	"strings"

	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
)

// roleAuthor is the MARC relator code of authors.
const roleAuthor = "aut"

// modsMetadata flattens one MODS record into ordered metadata fields.
func modsMetadata(m *xmlMods) mets.Metadata {
	var md mets.Metadata
	if m == nil {
		return md
	}

	md = md.Add(mets.FieldTitle, title(m.TitleInfos))
	md = md.Add(mets.FieldAuthor, authors(m.Names)...)
	for _, oi := range m.OriginInfos {
		md = md.Add(mets.FieldYear, trimAll(oi.DatesIssued)...)
		md = md.Add(mets.FieldPlace, trimAll(oi.Places)...)
	}
	md = md.Add(mets.FieldLanguage, trimAll(m.Languages)...)
	md = md.Add(mets.FieldRecordID, trimAll(m.RecordIDs)...)
	md = md.Add(mets.FieldCollection, trimAll(m.Classifications)...)
	md = md.Add(mets.FieldType, trimAll(m.Genres)...)
	return md
}

// title prefers the main title over alternative, translated or uniform ones.
func title(infos []xmlTitleInfo) string {
	if len(infos) == 0 {
		return ""
	}
	ti := infos[0]
	for _, candidate := range infos {
		if candidate.Type == "" {
			ti = candidate
			break
		}
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{ti.NonSort, ti.Title} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	out := strings.Join(parts, " ")
	if sub := strings.TrimSpace(ti.SubTitle); sub != "" {
		out += ": " + sub
	}
	return out
}

// authors returns names carrying the author role. When no name has any role, all names count.
func authors(names []xmlName) []string {
	anyRole := false
	for _, n := range names {
		if len(n.RoleTerms) > 0 {
			anyRole = true
			break
		}
	}

	var out []string
	for _, n := range names {
		if anyRole && !hasRole(n, roleAuthor) {
			continue
		}
		if name := displayName(n); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func hasRole(n xmlName, role string) bool {
	for _, r := range n.RoleTerms {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

// displayName renders "family, given" from typed name parts, falling back to displayForm.
func displayName(n xmlName) string {
	var family, given string
	var untyped []string
	for _, p := range n.NameParts {
		v := strings.TrimSpace(p.Value)
		switch p.Type {
		case "family":
			family = v
		case "given":
			given = v
		case "":
			if v != "" {
				untyped = append(untyped, v)
			}
		}
	}

	switch {
	case family != "" && given != "":
		return family + ", " + given
	case family != "":
		return family
	case len(untyped) > 0:
		return strings.Join(untyped, " ")
	case given != "":
		return given
	}
	return strings.TrimSpace(n.DisplayForm)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
