package models

import (
	"encoding/json"
	"fmt"
)

// Student is a record of the students collection. Fields other than id and
// name are kept verbatim in Extra so that records round-trip unchanged.
type Student struct {
	ID    int
	Name  string
	Extra map[string]json.RawMessage
}

// MarshalJSON writes the known fields next to the opaque ones. A zero ID is
// omitted so the server assigns one on create.
func (s Student) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(s.Extra)+2)
	for k, v := range s.Extra {
		fields[k] = v
	}
	delete(fields, "id")
	if s.ID != 0 {
		id, err := json.Marshal(s.ID)
		if err != nil {
			return nil, err
		}
		fields["id"] = id
	}
	name, err := json.Marshal(s.Name)
	if err != nil {
		return nil, err
	}
	fields["name"] = name
	return json.Marshal(fields)
}

// UnmarshalJSON reads id and name and keeps every other field in Extra.
func (s *Student) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("student: %w", err)
	}
	if fields == nil {
		return nil
	}

	*s = Student{}
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &s.ID); err != nil {
			return fmt.Errorf("student: invalid id: %w", err)
		}
		delete(fields, "id")
	}
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &s.Name); err != nil {
			return fmt.Errorf("student: invalid name: %w", err)
		}
		delete(fields, "name")
	}
	if len(fields) > 0 {
		s.Extra = fields
	}
	return nil
}
