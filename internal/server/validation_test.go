package server

import (
	"strings"
	"testing"

	"library-browser/internal/browser"
)

func TestValidateFilterValue(t *testing.T) {
	accepted := []string{"", "RPG", "4.5", "1500", strings.Repeat("a", 200), "Hack and slash/Beat 'em up"}
	for _, value := range accepted {
		if err := validateFilterValue(value); err != nil {
			t.Fatalf("expected %q accepted, got %v", value, err)
		}
	}
	for _, value := range []string{"RPG\n", "a\x00b"} {
		if err := validateFilterValue(value); err == nil {
			t.Fatalf("expected %q rejected", value)
		}
	}
}

func TestValidateAction(t *testing.T) {
	registerValidators()
	cases := []struct {
		name   string
		action wsAction
		want   string
	}{
		{"missing action", wsAction{}, "action is required"},
		{"unknown action", wsAction{Action: "jump"}, "unknown action"},
		{"hover without id", wsAction{Action: "hover"}, "id is required"},
		{"non numeric rating", wsAction{Action: "rating", Value: "lots"}, "value must be a number"},
		{"control character filter", wsAction{Action: "submit", Filters: browser.Selections{Genre: "RPG\x00"}}, "filter value contains control characters"},
	}
	for _, tc := range cases {
		err := validateAction(tc.action)
		if err == nil || err.Error() != tc.want {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.want, err)
		}
	}
	valid := []wsAction{
		{Action: "submit", Filters: browser.Selections{Genre: "RPG", Rating: "70"}},
		{Action: "submit", Filters: browser.Selections{Theme: strings.Repeat("a", 81), Rating: "4.5"}},
		{Action: "submit", Filters: browser.Selections{Rating: "1500"}},
		{Action: "next"},
		{Action: "rating", Value: "55"},
		{Action: "menu", ID: "abc"},
	}
	for _, action := range valid {
		if err := validateAction(action); err != nil {
			t.Fatalf("expected %+v valid, got %v", action, err)
		}
	}
}
