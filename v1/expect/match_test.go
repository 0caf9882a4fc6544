package expect

import (
	"encoding/json"
	"testing"
)

func parse(t *testing.T, doc string) interface{} {
	t.Helper()
	out, err := parseExpectation([]byte(doc))
	if err != nil {
		t.Fatalf("parseExpectation(%s): %v", doc, err)
	}
	return out
}

func TestPartialMatch_ObjectSubset(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"subset matches", `{"a":1}`, `{"a":1,"b":2}`, true},
		{"value mismatch", `{"a":2}`, `{"a":1,"b":2}`, false},
		{"missing key", `{"c":1}`, `{"a":1,"b":2}`, false},
		{"empty expectation", `{}`, `{"a":1}`, true},
		{"nested subset", `{"m":{"x":1}}`, `{"m":{"x":1,"y":2}}`, true},
		{"nested mismatch", `{"m":{"x":2}}`, `{"m":{"x":1}}`, false},
		{"object vs scalar", `{"a":1}`, `5`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := partialMatch(parse(t, tc.expected), parse(t, tc.actual))
			if got != tc.want {
				t.Errorf("partialMatch(%s, %s) = %v, want %v", tc.expected, tc.actual, got, tc.want)
			}
		})
	}
}

func TestPartialMatch_SequenceExistential(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"element present", `{"xs":[1]}`, `{"xs":[1,2]}`, true},
		{"element absent", `{"xs":[3]}`, `{"xs":[1,2]}`, false},
		// Existential, not multiset: a duplicate expectation is satisfied
		// by a single actual element.
		{"duplicates collapse", `{"xs":[1,1]}`, `{"xs":[1]}`, true},
		{"order irrelevant", `{"xs":[2,1]}`, `{"xs":[1,2]}`, true},
		{"empty expected seq", `{"xs":[]}`, `{"xs":[1]}`, true},
		{"object elements", `{"xs":[{"a":1}]}`, `{"xs":[{"a":1,"b":2},{"a":3}]}`, true},
		{"seq vs scalar", `{"xs":[1]}`, `{"xs":1}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := partialMatch(parse(t, tc.expected), parse(t, tc.actual))
			if got != tc.want {
				t.Errorf("partialMatch(%s, %s) = %v, want %v", tc.expected, tc.actual, got, tc.want)
			}
		})
	}
}

func TestLeafEqual_Numbers(t *testing.T) {
	if !leafEqual(json.Number("5"), json.Number("5")) {
		t.Error("identical numbers must be equal")
	}
	if !leafEqual(json.Number("5"), json.Number("5.0")) {
		t.Error("numerically equal renderings must be equal")
	}
	if leafEqual(json.Number("5"), json.Number("6")) {
		t.Error("different numbers must not be equal")
	}
	if leafEqual(json.Number("5"), "5") {
		t.Error("number must not equal string")
	}
	if leafEqual("a", json.Number("5")) {
		t.Error("string must not equal number")
	}
	if !leafEqual("a", "a") || !leafEqual(true, true) {
		t.Error("plain leaves must compare by equality")
	}
}
