// Package skills discovers and parses Markdown skill documents from a
// corpus. The corpus can be a directory on disk or the embedded default
// corpus; both are accessed through fs.FS.
package skills

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/hwskills/skillkit/internal/logging"
	"github.com/hwskills/skillkit/internal/model"
)

// TemplatePrefix marks documents that are templates rather than skills.
// Templates are listed but never installed.
const TemplatePrefix = "_"

// Parser reads skill documents from a corpus filesystem.
type Parser struct {
	fsys fs.FS
	dir  string
	// base is the absolute on-disk location of dir. Empty when the
	// corpus is embedded and has no disk presence.
	base string
}

// New creates a parser over an arbitrary filesystem, typically the
// embedded corpus. Skills parsed this way have no on-disk path and can
// only be installed by copy.
func New(fsys fs.FS, dir string) *Parser {
	return &Parser{fsys: fsys, dir: dir}
}

// FromDir creates a parser over a corpus directory on disk.
func FromDir(dir string) (*Parser, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus directory %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("corpus directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path %q is not a directory", dir)
	}
	return &Parser{fsys: os.DirFS(abs), dir: ".", base: abs}, nil
}

// Parse reads every Markdown document in the corpus directory, in
// filename order. Template documents are included with Template set;
// callers decide whether to filter them.
func (p *Parser) Parse() ([]model.Skill, error) {
	entries, err := fs.ReadDir(p.fsys, p.dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory %q: %w", p.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	parsed := make([]model.Skill, 0, len(names))
	for _, name := range names {
		skill, err := p.parseFile(name)
		if err != nil {
			logging.Warn("skipping unparseable skill document",
				logging.Path(name),
				logging.Err(err),
			)
			continue
		}
		parsed = append(parsed, skill)
	}

	logging.Debug("parsed corpus",
		logging.Path(p.dir),
		logging.Count(len(parsed)),
	)

	return parsed, nil
}

// frontmatterFields are the frontmatter keys with dedicated Skill fields.
var frontmatterFields = map[string]bool{
	"name":        true,
	"description": true,
	"tools":       true,
}

func (p *Parser) parseFile(name string) (model.Skill, error) {
	rel := path.Join(p.dir, name)
	data, err := fs.ReadFile(p.fsys, rel)
	if err != nil {
		return model.Skill{}, fmt.Errorf("read %q: %w", rel, err)
	}

	skill := model.Skill{
		Path:     rel,
		Raw:      data,
		Template: strings.HasPrefix(name, TemplatePrefix),
	}
	if p.base != "" {
		skill.AbsPath = filepath.Join(p.base, filepath.FromSlash(rel))
	}

	var matter map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return model.Skill{}, fmt.Errorf("parse frontmatter of %q: %w", rel, err)
	}

	skill.Name = stringField(matter, "name")
	skill.Description = stringField(matter, "description")
	skill.Tools = stringSliceField(matter, "tools")
	for key, val := range matter {
		if frontmatterFields[key] {
			continue
		}
		if skill.Metadata == nil {
			skill.Metadata = make(map[string]string)
		}
		if s, ok := val.(string); ok {
			skill.Metadata[key] = s
		} else {
			skill.Metadata[key] = fmt.Sprintf("%v", val)
		}
	}

	if skill.Name == "" {
		skill.Name = DeriveName(name)
	}
	if err := ValidateName(skill.Name); err != nil {
		return model.Skill{}, fmt.Errorf("invalid skill name in %q: %w", rel, err)
	}

	skill.Content = NormalizeContent(string(body))

	if info, err := fs.Stat(p.fsys, rel); err == nil {
		skill.ModifiedAt = info.ModTime()
	}

	return skill, nil
}

// DeriveName produces a skill name from a document filename: the
// extension and any template prefix are stripped.
func DeriveName(filename string) string {
	name := strings.TrimSuffix(path.Base(filename), ".md")
	return strings.TrimPrefix(name, TemplatePrefix)
}

// ValidateName checks that a skill name contains only alphanumerics,
// hyphens, and underscores, with no surrounding whitespace.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("skill name cannot have leading/trailing whitespace: %q", name)
	}
	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("skill name contains invalid character %q: %q", r, name)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_'
}

// NormalizeContent trims surrounding whitespace and normalizes line
// endings to \n.
func NormalizeContent(content string) string {
	return strings.ReplaceAll(strings.TrimSpace(content), "\r\n", "\n")
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func stringSliceField(m map[string]any, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
