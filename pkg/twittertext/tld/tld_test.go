package tld

import "testing"

func TestIsValid(t *testing.T) {
	if err := Err(); err != nil {
		t.Fatalf("embedded table failed to load: %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"com", true},
		{"co", true},
		{"jp", true},
		{"tv", true},
		{"みんな", true},
		{"xn--q9jyb4c", true},
		{"한국", true},
		{"vermögensberatung", true},
		{"рф", true},
		{"xn--p1ai", true},
		{"COM", false},
		{"comm", false},
		{"baz", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.name); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParse_RejectsEmptyTable(t *testing.T) {
	if _, err := Parse([]byte("country: []\ngeneric: []\n")); err == nil {
		t.Error("Parse() should fail for a table without entries")
	}
}

func TestTableSet_AddsPunycodeForms(t *testing.T) {
	table := &Table{Generic: []string{"みんな"}}
	set := table.Set()

	if _, ok := set["みんな"]; !ok {
		t.Error("unicode form missing from set")
	}
	if _, ok := set["xn--q9jyb4c"]; !ok {
		t.Error("xn-- form missing from set")
	}
}

func TestAll_Sorted(t *testing.T) {
	all := All()
	if len(all) < 1000 {
		t.Fatalf("All() returned %d entries, want a full table", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] > all[i] {
			t.Fatalf("All() not sorted at %d: %q > %q", i, all[i-1], all[i])
		}
	}
}
