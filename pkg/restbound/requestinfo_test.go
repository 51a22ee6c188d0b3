package restbound

import (
	"testing"
)

func TestRequestInfo_ResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		path     string
		expected string
	}{
		{"no base", "", "/users", "/users"},
		{"base and path", "/api", "/users", "/api/users"},
		{"both with slash", "/api/", "/users", "/api/users"},
		{"neither with slash", "api", "users", "api/users"},
		{"empty path", "/api", "", "/api"},
		{"empty base template", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewRequestInfo("GET", tt.path)
			info.BasePath = TemplatePath(tt.base)
			got, err := info.ResolvePath(StringPathParamSerializer{})
			if err != nil {
				t.Fatalf("ResolvePath failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ResolvePath() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestRequestInfo_ResolvePathSubstitutions(t *testing.T) {
	info := NewRequestInfo("GET", "/accounts/{accountId}/users/{userId}")
	info.BasePath = TemplatePath("/v{version}")
	info.AddPathParam("accountId", "A1", PathSerializationToString)
	info.AddPathParam("userId", 42, PathSerializationToString)
	info.AddPathParam("version", 2, PathSerializationToString)

	got, err := info.ResolvePath(StringPathParamSerializer{})
	if err != nil {
		t.Fatalf("ResolvePath failed: %v", err)
	}
	if got != "/v2/accounts/A1/users/42" {
		t.Errorf("ResolvePath() = %q", got)
	}
}

func TestRequestInfo_AddQueryMap(t *testing.T) {
	info := NewRequestInfo("GET", "/search")
	info.AddQueryMap(map[string]string{"b": "2", "a": "1"}, QuerySerializationToString)

	if len(info.Queries) != 2 {
		t.Fatalf("expected 2 query entries, got %d", len(info.Queries))
	}
	// Sorted key order for deterministic assembly
	if info.Queries[0].Name != "a" || info.Queries[1].Name != "b" {
		t.Errorf("unexpected query order: %v", info.Queries)
	}
}

func TestRequestInfo_AddQueryMapNonMap(t *testing.T) {
	info := NewRequestInfo("GET", "/search")
	info.AddQueryMap("not-a-map", QuerySerializationToString)
	if len(info.Queries) != 0 {
		t.Errorf("expected non-map value to be ignored, got %v", info.Queries)
	}
}

func TestRequestInfo_SetPropertyCaseSensitive(t *testing.T) {
	info := NewRequestInfo("GET", "/")
	info.SetProperty("Key", 1)
	info.SetProperty("key", 2)

	if len(info.Properties) != 2 {
		t.Errorf("expected case-sensitive keys to coexist, got %v", info.Properties)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		value    any
		expected string
	}{
		{nil, ""},
		{"rust", "rust"},
		{42, "42"},
		{true, "true"},
		{3.5, "3.5"},
	}

	for _, tt := range tests {
		if got := Stringify(tt.value); got != tt.expected {
			t.Errorf("Stringify(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}
