package mets

import (
	"slices"
	"testing"
)

func TestAuthors_NoRolesMeansAllNames(t *testing.T) {
	names := []xmlName{
		{NameParts: []xmlNamePart{{Value: "Anonymus"}}},
		{DisplayForm: " Telemann, Georg Philipp "},
	}
	got := authors(names)
	if want := []string{"Anonymus", "Telemann, Georg Philipp"}; !slices.Equal(got, want) {
		t.Errorf("authors = %v, want %v", got, want)
	}
}

func TestAuthors_OnlyAuthorRole(t *testing.T) {
	names := []xmlName{
		{NameParts: []xmlNamePart{{Type: "family", Value: "Händel"}}, RoleTerms: []string{"AUT"}},
		{NameParts: []xmlNamePart{{Value: "Verlag"}}, RoleTerms: []string{"pbl"}},
		{NameParts: []xmlNamePart{{Value: "Ohne Rolle"}}},
	}
	if got := authors(names); !slices.Equal(got, []string{"Händel"}) {
		t.Errorf("authors = %v", got)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		infos []xmlTitleInfo
		want  string
	}{
		{"empty", nil, ""},
		{"plain", []xmlTitleInfo{{Title: " Zeitung "}}, "Zeitung"},
		{"only alternative", []xmlTitleInfo{{Type: "alternative", Title: "Alt"}}, "Alt"},
		{"subtitle", []xmlTitleInfo{{Title: "Karte", SubTitle: "Sachsen"}}, "Karte: Sachsen"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := title(tc.infos); got != tc.want {
				t.Errorf("title = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestModsMetadata_Nil(t *testing.T) {
	if md := modsMetadata(nil); len(md) != 0 {
		t.Errorf("expected empty metadata, got %v", md)
	}
}
