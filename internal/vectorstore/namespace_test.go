package vectorstore

import "testing"

func TestNormalizeNamespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain ascii unchanged", in: "chapter_5", want: "chapter_5"},
		{name: "accented characters stripped", in: "chapitre_été_3", want: "chapitre_t_3"},
		{name: "cjk stripped", in: "chapter_第一_1", want: "chapter__1"},
		{name: "only non-ascii", in: "éèê", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "punctuation preserved", in: "chapter-5.v2", want: "chapter-5.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeNamespace(tt.in); got != tt.want {
				t.Errorf("NormalizeNamespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
