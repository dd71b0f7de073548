package corpus

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedCorpus(t *testing.T) {
	entries, err := fs.ReadDir(Files, Dir)
	if err != nil {
		t.Fatalf("Reading embedded corpus: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("Embedded corpus is empty")
	}

	foundTemplate := false
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".md") {
			t.Errorf("Unexpected non-Markdown file in corpus: %s", e.Name())
			continue
		}
		if strings.HasPrefix(e.Name(), "_") {
			foundTemplate = true
		}

		data, err := fs.ReadFile(Files, Dir+"/"+e.Name())
		if err != nil {
			t.Errorf("Reading %s: %v", e.Name(), err)
			continue
		}
		if !bytes.HasPrefix(data, []byte("---\n")) {
			t.Errorf("%s is missing YAML frontmatter", e.Name())
		}
	}

	if !foundTemplate {
		t.Error("Expected a template document in the corpus")
	}
}
