package types

import (
	"encoding/json"
	"fmt"
)

// FlexString accepts either a JSON string or a JSON number and remembers
// which one it was. Postal codes and phone numbers arrive both ways from
// upstream systems.
type FlexString struct {
	Value   string
	Numeric bool
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	if string(data) == "null" {
		// Like the stdlib types, null leaves the value untouched.
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.Value = s
		f.Numeric = false
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.Value = n.String()
	f.Numeric = true
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

func (f FlexString) String() string {
	return f.Value
}
