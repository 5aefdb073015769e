package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode unmarshals a result keeping numbers as json.Number. An absent result
// leaves v untouched.
func Decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return InvalidJSON(string(raw))
	}
	return nil
}

// DecodeRows reads the list of records returned by a *.get method.
func DecodeRows(raw json.RawMessage) ([]Row, error) {
	var rows []Row
	if err := Decode(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DecodeIDs reads an id list such as {"groupids": ["42"]} from a create or mass
// update result.
func DecodeIDs(raw json.RawMessage, key string) ([]string, error) {
	var result map[string]any
	if err := Decode(raw, &result); err != nil {
		return nil, err
	}
	list, ok := result[key].([]any)
	if !ok {
		return []string{}, nil
	}
	ids := make([]string, 0, len(list))
	for _, v := range list {
		ids = append(ids, fmt.Sprint(v))
	}
	return ids, nil
}
