package model

import "time"

// Skill represents a single Markdown skill document in the corpus.
type Skill struct {
	// Name is the skill identifier from frontmatter, or derived from the
	// filename when frontmatter omits it.
	Name string `json:"name"`

	// Description summarizes what the skill covers.
	Description string `json:"description,omitempty"`

	// Path is the corpus-relative path of the document (e.g. "skills/api-design.md").
	Path string `json:"path"`

	// AbsPath is the absolute on-disk path of the document. Empty for
	// skills read from the embedded corpus.
	AbsPath string `json:"abs_path,omitempty"`

	// Template marks documents with a leading underscore in their
	// filename. Templates are never installed.
	Template bool `json:"template,omitempty"`

	// Tools lists external tools the skill refers to.
	Tools []string `json:"tools,omitempty"`

	// Metadata holds any extra frontmatter fields.
	Metadata map[string]string `json:"metadata,omitempty"`

	// Content is the document body with frontmatter stripped.
	Content string `json:"content"`

	// Raw is the complete document as read from the corpus, frontmatter
	// included. Used when installing by copy.
	Raw []byte `json:"-"`

	// ModifiedAt is the document's modification time. Zero for embedded skills.
	ModifiedAt time.Time `json:"modified_at,omitzero"`
}

// Embedded reports whether the skill comes from the embedded corpus
// rather than a directory on disk.
func (s Skill) Embedded() bool {
	return s.AbsPath == ""
}

// FileName returns the base filename the skill installs as.
func (s Skill) FileName() string {
	for i := len(s.Path) - 1; i >= 0; i-- {
		if s.Path[i] == '/' {
			return s.Path[i+1:]
		}
	}
	return s.Path
}
