package wfm

import "encoding/json"

// envelope is the {data, error} wrapper warframe.market puts around every
// response. Both fields are kept raw: error can be any JSON value, and the
// shape of data varies per endpoint and API revision.
type envelope struct {
	APIVersion string          `json:"apiVersion,omitempty"`
	Data       json.RawMessage `json:"data"`
	Error      json.RawMessage `json:"error"`
}

// hasError reports whether the envelope carries a non-null error value.
func (e *envelope) hasError() bool {
	if len(e.Error) == 0 {
		return false
	}
	return string(e.Error) != "null"
}

// extractStrategy locates a candidate JSON array inside the data payload,
// returning nil when the payload does not match its shape.
type extractStrategy func(data json.RawMessage) json.RawMessage

// orderArrayStrategies is the ordered list of known places the order array
// has appeared across upstream revisions. The first non-nil hit wins.
var orderArrayStrategies = []extractStrategy{
	objectField("orders"),
	nestedField("payload", "orders"),
	objectField("items"),
	rootArray,
}

// extractArray runs strategies in order and returns the first array found,
// or nil when none matches.
func extractArray(data json.RawMessage, strategies []extractStrategy) json.RawMessage {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	for _, s := range strategies {
		if arr := s(data); arr != nil {
			return arr
		}
	}
	return nil
}

// objectField matches {"<name>": [...]}.
func objectField(name string) extractStrategy {
	return func(data json.RawMessage) json.RawMessage {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		return asArray(obj[name])
	}
}

// nestedField matches {"<outer>": {"<inner>": [...]}}.
func nestedField(outer, inner string) extractStrategy {
	return func(data json.RawMessage) json.RawMessage {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		nested, ok := obj[outer]
		if !ok {
			return nil
		}
		var inObj map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inObj); err != nil {
			return nil
		}
		return asArray(inObj[inner])
	}
}

// rootArray matches data that is itself the array.
func rootArray(data json.RawMessage) json.RawMessage {
	return asArray(data)
}

func asArray(raw json.RawMessage) json.RawMessage {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return raw
		default:
			return nil
		}
	}
	return nil
}
