package server

import (
	"net/url"
	"testing"
)

func TestParseRenderRequestDefaults(t *testing.T) {
	s := NewServer(8080)

	req, err := s.parseRenderRequest(url.Values{})
	if err != nil {
		t.Fatalf("parseRenderRequest: %v", err)
	}
	if req.Scene != "default" || req.Width != 400 || req.MaxSamples != 50 {
		t.Errorf("unexpected defaults: %+v", req)
	}
}

func TestParseRenderRequestOverrides(t *testing.T) {
	s := NewServer(8080)

	query := url.Values{}
	query.Set("scene", "cornell")
	query.Set("width", "200")
	query.Set("maxSamples", "16")
	query.Set("seed", "7")

	req, err := s.parseRenderRequest(query)
	if err != nil {
		t.Fatalf("parseRenderRequest: %v", err)
	}
	if req.Scene != "cornell" || req.Width != 200 || req.MaxSamples != 16 || req.Seed != 7 {
		t.Errorf("overrides not applied: %+v", req)
	}
}

func TestParseRenderRequestRejectsBadValues(t *testing.T) {
	s := NewServer(8080)

	tests := []struct{ name, value string }{
		{"width", "abc"},
		{"width", "8"},      // below minimum
		{"width", "100000"}, // above maximum
		{"maxSamples", "0"},
		{"maxPasses", "-2"},
		{"workers", "-1"},
		{"seed", "not-a-number"},
	}
	for _, tt := range tests {
		query := url.Values{}
		query.Set(tt.name, tt.value)
		if _, err := s.parseRenderRequest(query); err == nil {
			t.Errorf("expected error for %s=%s", tt.name, tt.value)
		}
	}
}

func TestBuildScene(t *testing.T) {
	for _, name := range []string{"default", "cornell", "mirror", "spheregrid"} {
		req := RenderRequest{Scene: name, Width: 100}
		s, err := buildScene(req)
		if err != nil {
			t.Errorf("buildScene(%s): %v", name, err)
			continue
		}
		if s.Camera.Width() != 100 {
			t.Errorf("buildScene(%s) width = %d, want 100", name, s.Camera.Width())
		}
	}

	if _, err := buildScene(RenderRequest{Scene: "nonexistent"}); err == nil {
		t.Error("expected error for unknown scene")
	}
}
