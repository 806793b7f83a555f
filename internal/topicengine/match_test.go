package topicengine

import "testing"

func TestMatchesPlainTopic(t *testing.T) {
	cases := map[string]bool{
		"the/topic":          true,
		"the/topik":          false,
		"toolong/the/topic":  false,
		"/the/topic":         false,
		"the/topic/toolong":  false,
		"the/topic/":         false,
	}
	for candidate, want := range cases {
		if got := Matches("the/topic", candidate); got != want {
			t.Errorf("Matches(%q, %q) = %v, want %v", "the/topic", candidate, got, want)
		}
	}
}

func TestMatchesSingleWildcard(t *testing.T) {
	pattern := "the/topic/+"
	cases := map[string]bool{
		"the/topic/something":  true,
		"the/topic/":           true,
		"/the/topic":           false,
		"the/topic":            false,
		"the/topik/something":  false,
		"/the/topic/something": false,
	}
	for candidate, want := range cases {
		if got := Matches(pattern, candidate); got != want {
			t.Errorf("Matches(%q, %q) = %v, want %v", pattern, candidate, got, want)
		}
	}
}

func TestMatchesTwoWildcards(t *testing.T) {
	pattern := "the/topic/+/is/+/longer"
	cases := map[string]bool{
		"the/topic/something/is/alot/longer":   true,
		"the/topic/something/is/alot/longeeee": false,
		"zhe/topic/something/is/alot/longer":   false,
		"the/topic//is//longer":                true,
		"/the/topic/something/is/alot/longer":  false,
		"the/topic/is/longer":                  false,
		"the/topik/something":                  false,
		"/the/topic/something":                 false,
	}
	for candidate, want := range cases {
		if got := Matches(pattern, candidate); got != want {
			t.Errorf("Matches(%q, %q) = %v, want %v", pattern, candidate, got, want)
		}
	}
}

func TestMatchesHashWildcard(t *testing.T) {
	pattern := "the/topic/#"
	cases := map[string]bool{
		"the/topic/something":                true,
		"the/topic/something/is/alot/longer": true,
		"the/topic/":                         true,
		"the/topic//////":                    true,
		"/the/topic":                         false,
		"the/topic":                          false,
		"the/topik/something":                false,
		"/the/topic/something":               false,
	}
	for candidate, want := range cases {
		if got := Matches(pattern, candidate); got != want {
			t.Errorf("Matches(%q, %q) = %v, want %v", pattern, candidate, got, want)
		}
	}
}
