package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString decodes a JSON string or number into its string form.
// Proof files and subgraph payloads are not consistent about quoting numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*s = FlexString(num.String())
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexBool decodes a JSON bool or a "true"/"false" string.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*b = false
			return nil
		}
		val, err := strconv.ParseBool(str)
		if err != nil {
			return fmt.Errorf("flex bool: %w", err)
		}
		*b = FlexBool(val)
		return nil
	}
	var val bool
	if err := json.Unmarshal(data, &val); err != nil {
		return fmt.Errorf("flex bool: %w", err)
	}
	*b = FlexBool(val)
	return nil
}

// BoolString renders a bool the way the stats documents expect it.
func BoolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
