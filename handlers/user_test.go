package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func searchPatterns(t *testing.T, filter bson.M) []string {
	t.Helper()
	or, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected an $or filter, got %v", filter)
	}
	patterns := make([]string, 0, len(or))
	for _, clause := range or {
		for _, v := range clause {
			re, ok := v.(primitive.Regex)
			if !ok {
				t.Fatalf("expected a regex clause, got %T", v)
			}
			if re.Options != "i" {
				t.Fatalf("search must be case-insensitive, got options %q", re.Options)
			}
			patterns = append(patterns, re.Pattern)
		}
	}
	return patterns
}

func TestMemberSearchFilter(t *testing.T) {
	if got := memberSearchFilter(""); len(got) != 0 {
		t.Fatalf("empty query must match everyone, got %v", got)
	}

	for _, p := range searchPatterns(t, memberSearchFilter("Constructora")) {
		if p != "Constructora" {
			t.Errorf("plain query must pass through unchanged, got %q", p)
		}
	}

	// A query of regex metacharacters is search text. Unquoted, "(" is
	// an invalid pattern and the lookup fails instead of coming back
	// empty.
	for _, p := range searchPatterns(t, memberSearchFilter("S.A. (Ltda)")) {
		if p != `S\.A\. \(Ltda\)` {
			t.Errorf("metacharacters must be quoted, got %q", p)
		}
	}
}
