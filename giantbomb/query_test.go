package giantbomb

import (
	"slices"
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	var f Filter
	if f.String() != "" || f.Len() != 0 {
		t.Errorf("zero Filter should be empty")
	}
	f.Set("name", "Atari")
	f.Set("id", 12)
	f.Set("name", "Sega")

	if got := f.String(); got != "name:Sega,id:12" {
		t.Errorf("String() = %q, want %q", got, "name:Sega,id:12")
	}
	if v, ok := f.Get("id"); !ok || v != "12" {
		t.Errorf("Get(id) = %q, %v, want 12, true", v, ok)
	}
	if !slices.Equal(f.Keys(), []string{"name", "id"}) {
		t.Errorf("Keys() = %v, want [name id]", f.Keys())
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr string
	}{
		{in: "", want: ""},
		{in: "name:Atari", want: "name:Atari"},
		{in: "name:Atari, deck:a:b", want: "name:Atari,deck:a:b"},
		{in: "name", wantErr: "want key:value"},
		{in: ":x", wantErr: "want key:value"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFilter(tt.in)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseFilter(%q) error = %v, want %q", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilter(%q) failed: %v", tt.in, err)
			}
			if f.String() != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, f.String(), tt.want)
			}
		})
	}
}

func TestQuery_Values(t *testing.T) {
	var f Filter
	f.Set("name", "Atari")
	q := Query{Sort: "name:asc", Filter: f, Fields: []string{"name", "id"}}

	v := q.Values(300, "KEY")
	if got := v.Get("offset"); got != "300" {
		t.Errorf("offset = %q, want 300", got)
	}
	if got := v.Get("filter"); got != "name:Atari" {
		t.Errorf("filter = %q, want name:Atari", got)
	}
	// Values does not change the query.
	if q.Filter.Len() != 1 || len(q.Fields) != 2 {
		t.Errorf("Values() modified the query")
	}
	// deterministic encoding.
	if q.Values(0, "k").Encode() != q.Values(0, "k").Encode() {
		t.Errorf("Encode() is not deterministic")
	}
}

func TestClient_Endpoint(t *testing.T) {
	for _, base := range []string{"https://example.com/api", "https://example.com/api/"} {
		c := NewClient(base, "k")
		if got := c.endpoint("platforms"); got != "https://example.com/api/platforms/" {
			t.Errorf("endpoint() = %q", got)
		}
	}
}
