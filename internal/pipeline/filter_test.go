package pipeline

import "testing"

func TestShouldProcess(t *testing.T) {
	filter := NewFileFilter([]string{"**/~$*", "**/.*", "drafts/**"})

	tests := []struct {
		relPath  string
		expected bool
	}{
		{"policy.pdf", true},
		{"handbook.docx", true},
		{"notes.txt", true},
		{"sub/dir/policy.pdf", true},
		{"image.png", false},
		{"readme.md", false},
		{"policy", false},
		{"~$policy.docx", false},
		{"sub/~$policy.docx", false},
		{".hidden.txt", false},
		{"sub/.hidden.txt", false},
		{"drafts/policy.pdf", false},
		{"drafts/nested/policy.pdf", false},
	}

	for _, tt := range tests {
		if got := filter.ShouldProcess(tt.relPath); got != tt.expected {
			t.Errorf("ShouldProcess(%q) = %v, want %v", tt.relPath, got, tt.expected)
		}
	}
}

func TestShouldProcess_NoExcludes(t *testing.T) {
	filter := NewFileFilter(nil)
	if !filter.ShouldProcess("policy.pdf") {
		t.Error("supported file should process with no exclude patterns")
	}
	if filter.ShouldProcess("notes.doc") {
		t.Error("unsupported extension should never process")
	}
}
