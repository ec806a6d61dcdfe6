package convert

import (
	"testing"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantTitle string
		wantBody  string
	}{
		{
			name:      "title",
			input:     "---\ntitle: Notes\ntags: [a, b]\n---\n# Body\n",
			wantOK:    true,
			wantTitle: "Notes",
			wantBody:  "# Body\n",
		},
		{
			name:     "no front matter",
			input:    "# Body",
			wantOK:   false,
			wantBody: "# Body",
		},
		{
			name:     "thematic breaks around prose",
			input:    "---\nhello\n---\n",
			wantOK:   false,
			wantBody: "---\nhello\n---\n",
		},
		{
			name:     "heading between breaks",
			input:    "---\n# Heading\n---\n",
			wantOK:   false,
			wantBody: "---\n# Heading\n---\n",
		},
		{
			name:     "unterminated",
			input:    "---\ntitle: x\n",
			wantOK:   false,
			wantBody: "---\ntitle: x\n",
		},
		{
			name:     "invalid yaml",
			input:    "---\ntitle: [\n---\nbody",
			wantOK:   false,
			wantBody: "---\ntitle: [\n---\nbody",
		},
		{
			name:      "crlf",
			input:     "---\r\ntitle: Win\r\n---\r\nbody",
			wantOK:    true,
			wantTitle: "Win",
			wantBody:  "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, ok := splitFrontMatter(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if fm.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", fm.Title, tt.wantTitle)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}
