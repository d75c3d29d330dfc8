package names

import "testing"

func TestKey_FoldsDiacriticsAndCase(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Mica Galvão", "mica galvao"},
		{"MICA GALVAO", "mica galvao"},
		{"André Galvão", "andre galvao"},
		{"Márcio André", "marcio andre"},
	}
	for _, c := range cases {
		if got := Key(c.raw); got != c.want {
			t.Errorf("Key(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestKey_StripsPipesAndWhitespace(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"| John Smith |", "john smith"},
		{"John|Smith", "johnsmith"},
		{"  John   Smith  ", "john smith"},
		{"\tJohn Smith\t", "john smith"},
	}
	for _, c := range cases {
		if got := Key(c.raw); got != c.want {
			t.Errorf("Key(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

// A known scraping artifact concatenates the name with itself. The repair
// only fires on an exact doubled half, never on legitimate repetition.
func TestKey_RepairsDoubledNames(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Alice SmithAlice Smith", "alice smith"},
		{"Bob JonesBob Jones", "bob jones"},
		// Not doubled: halves differ.
		{"Alice SmithAlice Smyth", "alice smithalice smyth"},
		// Odd length can never be a doubling.
		{"AbcAb", "abcab"},
	}
	for _, c := range cases {
		if got := Key(c.raw); got != c.want {
			t.Errorf("Key(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

// The doubled-half check runs before whitespace-insensitive comparisons
// would apply, but after whitespace collapsing, so a stray inner space
// breaks the doubling and the name passes through unrepaired.
func TestKey_DoubledRepairUsesCleanedText(t *testing.T) {
	if got := Key(" Alice SmithAlice Smith "); got != "alice smith" {
		t.Errorf("Key = %q, want %q", got, "alice smith")
	}
}

func TestKey_MergesSpellingVariants(t *testing.T) {
	variants := []string{"Mica Galvão", "mica galvao", "| Mica Galvao |", "Mica GalvaoMica Galvao"}
	want := Key(variants[0])
	for _, v := range variants[1:] {
		if got := Key(v); got != want {
			t.Errorf("Key(%q) = %q, want %q (same identity)", v, got, want)
		}
	}
}

func TestDisplay_TitleCasesAndKeepsAccents(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"mica galvão", "Mica Galvão"},
		{"| roger gracie |", "Roger Gracie"},
		{"ALICE SMITHALICE SMITH", "Alice Smith"},
	}
	for _, c := range cases {
		if got := Display(c.raw); got != c.want {
			t.Errorf("Display(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestKey_EmptyAndPipeOnly(t *testing.T) {
	for _, raw := range []string{"", "   ", "|||", "| |"} {
		if got := Key(raw); got != "" {
			t.Errorf("Key(%q) = %q, want empty", raw, got)
		}
	}
}
