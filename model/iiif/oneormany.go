package iiif

import "encoding/json"

// OneOrMany accepts either a single JSON value or an array of values.
// Many IIIF servers use both forms interchangeably, see
// https://iiif.io/api/presentation/2.1/#language-of-property-values
type OneOrMany[T any] []T

func (m *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*m = many
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*m = OneOrMany[T]{one}
	return nil
}

func (m OneOrMany[T]) First() (T, bool) {
	if len(m) == 0 {
		var zero T
		return zero, false
	}
	return m[0], true
}

// URILink is either "https://..." or {"@id": "https://..."} or {"id": "https://..."}.
type URILink struct {
	ID string
}

func (u *URILink) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &u.ID)
	}
	var raw struct {
		ID      string `json:"@id"`
		PlainID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.ID = raw.ID
	if u.ID == "" {
		u.ID = raw.PlainID
	}
	return nil
}
