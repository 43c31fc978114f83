package landing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/landing", false},
		{"http://example.com", false},
		{"ftp://example.com", true},
		{"example.com/no-scheme", true},
		{"https://", true},
		{"", true},
		{"javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestFetchPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!doctype html>
<html>
<head>
<title>Plain Title</title>
<meta name="description" content="plain description">
<meta property="og:title" content="Joe's Plumbing - Fast Local Service">
<meta property="og:description" content="24/7 emergency plumbing">
<meta property="og:image" content="https://cdn.example.com/hero.jpg">
<meta property="og:site_name" content="Joe's Plumbing">
</head>
<body>hello</body>
</html>`))
	}))
	defer srv.Close()

	p := NewParser(2000, 0, zap.NewNop())
	preview, err := p.FetchPreview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPreview: %v", err)
	}

	if preview.Title != "Joe's Plumbing - Fast Local Service" {
		t.Errorf("Title = %q, want og:title to win", preview.Title)
	}
	if preview.Description != "24/7 emergency plumbing" {
		t.Errorf("Description = %q", preview.Description)
	}
	if preview.ImageURL != "https://cdn.example.com/hero.jpg" {
		t.Errorf("ImageURL = %q", preview.ImageURL)
	}
	if preview.SiteName != "Joe's Plumbing" {
		t.Errorf("SiteName = %q", preview.SiteName)
	}
	if preview.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", preview.StatusCode)
	}
}

func TestFetchPreviewFallsBackToTitleTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Bare Page</title></head><body></body></html>`))
	}))
	defer srv.Close()

	p := NewParser(2000, 0, zap.NewNop())
	preview, err := p.FetchPreview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPreview: %v", err)
	}

	if preview.Title != "Bare Page" {
		t.Errorf("Title = %q, want %q", preview.Title, "Bare Page")
	}
	if preview.Description != "" {
		t.Errorf("Description = %q, want empty", preview.Description)
	}
}

func TestFetchPreviewNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewParser(2000, 0, zap.NewNop())
	if _, err := p.FetchPreview(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchPreviewRejectsBadURL(t *testing.T) {
	p := NewParser(2000, 0, zap.NewNop())
	if _, err := p.FetchPreview(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
