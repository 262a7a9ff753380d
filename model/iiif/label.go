package iiif

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/language"
)

// LangNone marks values that carry no language tag.
const LangNone = "none"

// LangValue is a v2 property value: "foo" or {"@value":"foo","@language":"en"}.
type LangValue struct {
	Value    string `json:"@value"`
	Language string `json:"@language"`
}

func (v *LangValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		v.Language = LangNone
		return json.Unmarshal(data, &v.Value)
	}
	type alias LangValue
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = LangValue(raw)
	if v.Language == "" {
		v.Language = LangNone
	}
	return nil
}

// Label is a v2 label: a single value or an array of values.
type Label OneOrMany[LangValue]

func (l *Label) UnmarshalJSON(data []byte) error {
	return (*OneOrMany[LangValue])(l).UnmarshalJSON(data)
}

// Values applies the Presentation API language selection rules:
// untagged-only labels return everything, otherwise the values matching
// the preferred language win, then the first tagged language, then the
// untagged values.
func (l Label) Values(lang string) []string {
	if len(l) == 0 {
		return nil
	}

	allUntagged := true
	anyUntagged := false
	var matched []string
	for _, v := range l {
		if v.Language == LangNone {
			anyUntagged = true
		} else {
			allUntagged = false
		}
		if langMatches(v.Language, lang) {
			matched = append(matched, v.Value)
		}
	}

	if allUntagged {
		out := make([]string, 0, len(l))
		for _, v := range l {
			out = append(out, v.Value)
		}
		return out
	}
	if len(matched) > 0 {
		return matched
	}
	if !anyUntagged {
		first := l[0].Language
		var out []string
		for _, v := range l {
			if v.Language == first {
				out = append(out, v.Value)
			}
		}
		return out
	}
	var out []string
	for _, v := range l {
		if v.Language == LangNone {
			out = append(out, v.Value)
		}
	}
	return out
}

// LabelMap is a v3 label: {"en": ["Book 1"], "none": ["p. 1"]}.
// Some servers still send the v2 string forms, accept those too.
type LabelMap map[string][]string

func (m *LabelMap) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		type alias LabelMap
		var raw alias
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*m = LabelMap(raw)
		return nil
	}
	var text OneOrMany[string]
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*m = LabelMap{LangNone: text}
	return nil
}

// Values follows the same selection rules as Label.Values. The map has
// no document order, so matching walks the keys sorted: an exact tag
// wins, then the first base-language match, then the alphabetically
// first key.
func (m LabelMap) Values(lang string) []string {
	if len(m) == 0 {
		return nil
	}
	if v, ok := m[LangNone]; ok && len(m) == 1 {
		return v
	}
	if v, ok := m[lang]; ok && lang != LangNone {
		return v
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if langMatches(key, lang) {
			return m[key]
		}
	}
	if _, ok := m[LangNone]; !ok {
		return m[keys[0]]
	}
	return m[LangNone]
}

// LabelValuePair is a v3 requiredStatement.
type LabelValuePair struct {
	Label LabelMap `json:"label"`
	Value LabelMap `json:"value"`
}

// langMatches compares two BCP-47 tags on their base language, so that
// "en-GB" still matches a "en" preference.
func langMatches(tag, preferred string) bool {
	if tag == LangNone || tag == "" {
		return false
	}
	if tag == preferred {
		return true
	}
	t, err := language.Parse(tag)
	if err != nil {
		return false
	}
	p, err := language.Parse(preferred)
	if err != nil {
		return false
	}
	tb, _ := t.Base()
	pb, _ := p.Base()
	return tb == pb
}
