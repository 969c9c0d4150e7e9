package wfm

import (
	"encoding/json"
	"testing"
)

func TestExtractArrayLocations(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"top level orders", `{"orders": [1,2]}`, `[1,2]`},
		{"orders under payload", `{"payload": {"orders": [3]}}`, `[3]`},
		{"items variant", `{"items": [4]}`, `[4]`},
		{"data is the array", `[5,6]`, `[5,6]`},
		{"first match wins", `{"orders": [1], "items": [2]}`, `[1]`},
		{"leading whitespace array", ` [7]`, `[7]`},
	}
	for _, c := range cases {
		got := extractArray(json.RawMessage(c.data), orderArrayStrategies)
		if string(got) != c.want {
			t.Fatalf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestExtractArrayNoMatch(t *testing.T) {
	cases := []string{
		`{"orders": {"nested": true}}`,
		`{"something_else": [1]}`,
		`"just a string"`,
		`null`,
		``,
		`42`,
	}
	for _, data := range cases {
		if got := extractArray(json.RawMessage(data), orderArrayStrategies); got != nil {
			t.Fatalf("data %q: expected no match, got %q", data, got)
		}
	}
}

func TestEnvelopeHasError(t *testing.T) {
	cases := []struct {
		body string
		want bool
	}{
		{`{"data": [], "error": null}`, false},
		{`{"data": []}`, false},
		{`{"data": null, "error": "rate limited"}`, true},
		{`{"data": null, "error": {"code": 500}}`, true},
	}
	for _, c := range cases {
		var env envelope
		if err := json.Unmarshal([]byte(c.body), &env); err != nil {
			t.Fatalf("unmarshal %q: %v", c.body, err)
		}
		if env.hasError() != c.want {
			t.Fatalf("hasError(%q) = %v, want %v", c.body, env.hasError(), c.want)
		}
	}
}
