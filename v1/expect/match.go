package expect

import (
	"encoding/json"
	"reflect"
)

// partialMatch reports whether expected is structurally contained in actual.
//
//   - Objects: every expected key must exist in actual with a recursively
//     partial-matching value; extra actual keys are ignored.
//   - Sequences: every expected element must be satisfied by at least one
//     actual element. The semantics are existential, not positional:
//     duplicates in expected may be satisfied by the same actual element.
//   - Anything else: leaf equality, with numeric leaves compared by value so
//     that differing textual renderings of the same number still match.
func partialMatch(expected, actual interface{}) bool {
	switch e := expected.(type) {
	case map[string]interface{}:
		a, ok := actual.(map[string]interface{})
		if !ok {
			return false
		}
		for key, ev := range e {
			av, present := a[key]
			if !present || !partialMatch(ev, av) {
				return false
			}
		}
		return true

	case []interface{}:
		a, ok := actual.([]interface{})
		if !ok {
			return false
		}
		for _, ev := range e {
			if !containsMatch(a, ev) {
				return false
			}
		}
		return true

	default:
		return leafEqual(expected, actual)
	}
}

func containsMatch(actual []interface{}, expected interface{}) bool {
	for _, av := range actual {
		if partialMatch(expected, av) {
			return true
		}
	}
	return false
}

// leafEqual compares two leaves. json.Number values compare by their
// canonical text first and by float64 value as a fallback, so "5" and "5.0"
// are equal while "5" and "six" are not.
func leafEqual(expected, actual interface{}) bool {
	if en, ok := expected.(json.Number); ok {
		an, ok := actual.(json.Number)
		if !ok {
			return false
		}
		if en.String() == an.String() {
			return true
		}
		ef, eerr := en.Float64()
		af, aerr := an.Float64()
		return eerr == nil && aerr == nil && ef == af
	}
	return reflect.DeepEqual(expected, actual)
}
