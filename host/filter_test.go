package host

import (
	"testing"

	"github.com/c360studio/plughost/value"
)

func TestFilterValues(t *testing.T) {
	foo := value.NewStringLang("foo", "en")
	bar := value.NewStringLang("bar", "en-US")
	baz := value.NewString("baz")
	set := []value.Value{foo, bar, baz}

	tests := []struct {
		name    string
		enabled bool
		prefs   []string
		in      []value.Value
		want    []value.Value
	}{
		{"disabled returns all", false, []string{"en-US"}, set, set},
		{"exact match tier", true, []string{"en-US"}, set, []value.Value{bar}},
		{"exact beats primary", true, []string{"en"}, set, []value.Value{foo}},
		{"untagged fallback", true, []string{"fr"}, set, []value.Value{baz}},
		{"no tags at all", true, []string{"fr"},
			[]value.Value{value.NewString("a"), value.NewString("b")},
			[]value.Value{value.NewString("a"), value.NewString("b")}},
		{"no match no untagged returns all", true, []string{"fr"},
			[]value.Value{foo, bar}, []value.Value{foo, bar}},
		{"preference order", true, []string{"de", "en"}, set, []value.Value{foo}},
		{"case insensitive tags", true, []string{"EN-us"}, set, []value.Value{bar}},
		{"empty set", true, []string{"en"}, nil, nil},
		{"uris pass through", true, []string{"en"},
			[]value.Value{value.NewURI("http://example.org"), foo},
			[]value.Value{value.NewURI("http://example.org"), foo}},
		{"invalid preference skipped", true, []string{"!!", "en-US"}, set, []value.Value{bar}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pol := newFilterPolicy(tt.enabled, tt.prefs)
			got := filterValues(tt.in, pol)
			if len(got) != len(tt.want) {
				t.Fatalf("filterValues() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if !got[i].Equals(tt.want[i]) {
					t.Errorf("filterValues()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
