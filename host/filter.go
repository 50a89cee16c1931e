package host

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/c360studio/plughost/value"
)

// filterPolicy is the language filtering policy in effect for one query.
// It is snapshotted when the query executes, so a result set is internally
// consistent even if world options change concurrently.
type filterPolicy struct {
	enabled bool
	prefs   []language.Tag
	raw     []string
}

func newFilterPolicy(enabled bool, prefs []string) filterPolicy {
	pol := filterPolicy{enabled: enabled}
	for _, p := range prefs {
		tag, err := language.Parse(p)
		if err != nil {
			continue
		}
		pol.prefs = append(pol.prefs, tag)
		pol.raw = append(pol.raw, p)
	}
	return pol
}

// filterValues applies language-tag filtering to a result set.
//
// Only tagged string literals participate in tier selection; URIs, numbers,
// booleans and untagged strings are never excluded by a *better* tag match
// unless a tagged tier is chosen. Tiers per preference, in order: exact tag
// match, then primary-subtag match. The first non-empty tier wins and all
// of its members are returned. When no preference matches, the untagged
// literals are the fallback tier; when nothing carries a tag at all, the
// set is returned unfiltered. Disabled filtering returns the set untouched.
func filterValues(vals []value.Value, pol filterPolicy) []value.Value {
	if !pol.enabled || len(vals) == 0 {
		return vals
	}

	var anyTagged bool
	for _, v := range vals {
		if v.IsString() && v.Lang() != "" {
			anyTagged = true
			break
		}
	}
	if !anyTagged {
		return vals
	}

	keepTag := func(want func(string) bool) []value.Value {
		var out []value.Value
		for _, v := range vals {
			if !v.IsString() {
				out = append(out, v)
				continue
			}
			if lang := v.Lang(); lang != "" && want(lang) {
				out = append(out, v)
			}
		}
		return out
	}
	hasStrings := func(set []value.Value) bool {
		for _, v := range set {
			if v.IsString() {
				return true
			}
		}
		return false
	}

	for i, pref := range pol.prefs {
		raw := pol.raw[i]
		exact := keepTag(func(lang string) bool {
			return strings.EqualFold(lang, raw)
		})
		if hasStrings(exact) {
			return exact
		}
		prefBase, _ := pref.Base()
		primary := keepTag(func(lang string) bool {
			tag, err := language.Parse(lang)
			if err != nil {
				return false
			}
			base, _ := tag.Base()
			return base == prefBase
		})
		if hasStrings(primary) {
			return primary
		}
	}

	// Fallback tier: untagged literals (plus non-strings, which are never
	// filtered). If the fallback tier holds no literal at all, the result
	// set is returned unfiltered.
	var untagged []value.Value
	for _, v := range vals {
		if !v.IsString() || v.Lang() == "" {
			untagged = append(untagged, v)
		}
	}
	if hasStrings(untagged) || !hasStrings(vals) {
		return untagged
	}
	return vals
}
