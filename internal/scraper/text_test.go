package scraper

import (
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  string
	}{
		{"plain text", "UFC 300", "UFC 300"},
		{"surrounding whitespace", "\n  UFC 300 \n", "UFC 300"},
		{"nested elements", `<a href="/wiki/UFC_300">UFC 300:</a> <i>Pereira vs. Hill</i>`, "UFC 300: Pereira vs. Hill"},
		{"entities decoded", "Pereira &amp; Hill", "Pereira & Hill"},
		{"comments skipped", "UFC<!-- note --> 300", "UFC 300"},
		{"no children", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(cell(t, tt.inner)); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	for _, s := range []string{"UFC 300", "Las Vegas, Nevada, U.S.", "T-Mobile Arena"} {
		once := Text(cell(t, s))
		if once != s {
			t.Errorf("Text(%q) = %q, want unchanged", s, once)
		}
		if twice := Text(cell(t, once)); twice != once {
			t.Errorf("Text(Text(%q)) = %q, want %q", s, twice, once)
		}
	}
}

func TestText_NilNode(t *testing.T) {
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}

func TestTextWithoutFootnote(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  string
	}{
		{"trailing superscript", `Lightweight bout: Alice Smith vs. Bob Jones<sup class="reference">[12]</sup>`, "Lightweight bout: Alice Smith vs. Bob Jones"},
		{"only last superscript removed", `Alice<sup>1</sup> vs. Bob<sup>[2]</sup>`, "Alice1 vs. Bob"},
		{"no superscript", "Alice vs. Bob", "Alice vs. Bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textWithoutFootnote(cell(t, tt.inner)); got != tt.want {
				t.Errorf("textWithoutFootnote() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsFootnote(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"[12]", true},
		{"[]", true},
		{"&#91;3&#93;", true},
		{"[4][5]", true},
		{"T-Mobile Arena", false},
		{"T-Mobile Arena[4]", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := isFootnote(tt.text); got != tt.want {
				t.Errorf("isFootnote(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSiblingAt(t *testing.T) {
	doc := mustParse(t, page("<h2 id=\"start\">Heading</h2>\n<p>text</p>\n<ul><li>item</li></ul>"))
	h2 := mustFind(t, doc, "h2")

	if got := siblingAt(h2, 0); got != h2 {
		t.Error("siblingAt(n, 0) should return n")
	}
	if got := siblingAt(h2, 2); !isElementNamed(got, "p") {
		t.Errorf("siblingAt(h2, 2) = %v, want <p>", got)
	}
	if got := siblingAt(h2, 4); !isElementNamed(got, "ul") {
		t.Errorf("siblingAt(h2, 4) = %v, want <ul>", got)
	}
	if got := siblingAt(h2, 50); got != nil {
		t.Errorf("siblingAt past the end = %v, want nil", got)
	}
}
