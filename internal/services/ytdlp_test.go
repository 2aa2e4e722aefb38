package services

import "testing"

func TestParseListing(t *testing.T) {
	t.Run("decodes ordered entries", func(t *testing.T) {
		data := []byte(`{"entries":[{"id":"aaaaaaaaaaa","title":"First"},{"id":"bbbbbbbbbbb","title":"Second"}]}`)
		entries, err := parseListing(data)
		if err != nil {
			t.Fatalf("parseListing failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].ID != "aaaaaaaaaaa" || entries[0].Title != "First" {
			t.Errorf("entries[0] = %+v", entries[0])
		}
		if entries[1].ID != "bbbbbbbbbbb" {
			t.Errorf("entries[1] = %+v", entries[1])
		}
	})

	t.Run("drops entries without id", func(t *testing.T) {
		data := []byte(`{"entries":[{"id":"","title":"Ghost"},{"id":"aaaaaaaaaaa","title":"Real"}]}`)
		entries, err := parseListing(data)
		if err != nil {
			t.Fatalf("parseListing failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Title != "Real" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("empty entries array is valid", func(t *testing.T) {
		entries, err := parseListing([]byte(`{"entries":[]}`))
		if err != nil {
			t.Fatalf("parseListing failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})

	t.Run("empty output errors", func(t *testing.T) {
		if _, err := parseListing(nil); err == nil {
			t.Error("expected error for empty output")
		}
	})

	t.Run("malformed json errors", func(t *testing.T) {
		if _, err := parseListing([]byte("not json")); err == nil {
			t.Error("expected error for malformed json")
		}
	})
}

func TestFormatSelector(t *testing.T) {
	tests := []struct {
		profile string
		want    string
	}{
		{"720p", "bv*[height<=720]+ba/b[height<=720]"},
		{"720", "bv*[height<=720]+ba/b[height<=720]"},
		{"1080p", "bv*[height<=1080]+ba/b[height<=1080]"},
		{" 1080P ", "bv*[height<=1080]+ba/b[height<=1080]"},
		{"best", "bv*+ba/b"},
		{"", "bv*+ba/b"},
	}
	for _, tt := range tests {
		if got := FormatSelector(tt.profile); got != tt.want {
			t.Errorf("FormatSelector(%q) = %q, want %q", tt.profile, got, tt.want)
		}
	}
}

func TestEscapeOutputTemplate(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/media/plain.mp4", "/media/plain.mp4"},
		{"/media/100% Done.mp4", "/media/100%% Done.mp4"},
	}
	for _, tt := range tests {
		if got := escapeOutputTemplate(tt.path); got != tt.want {
			t.Errorf("escapeOutputTemplate(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewYTDLP(t *testing.T) {
	if NewYTDLP("").Binary != "yt-dlp" {
		t.Error("empty binary should default to yt-dlp")
	}
	if NewYTDLP("/usr/local/bin/yt-dlp").Binary != "/usr/local/bin/yt-dlp" {
		t.Error("explicit binary should be kept")
	}
}
