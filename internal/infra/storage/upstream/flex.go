package upstream

import (
	"encoding/json"
	"strconv"
)

// FlexString decodes a JSON value that the persistence service has stored
// inconsistently as either a string or a bare number. Historically the tenant
// side of the room join key was written numerically while the room side is a
// string; decoding both through FlexString keeps the join canonical.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(f))), nil
}

func (f FlexString) String() string { return string(f) }
