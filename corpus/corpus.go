// Package corpus embeds the default skill documents shipped with skillkit.
package corpus

import "embed"

// Files contains the built-in skill corpus. Files prefixed with an
// underscore are templates and are never installed into a target project.
//
//go:embed skills/*.md
var Files embed.FS

// Dir is the directory inside Files that holds the skill documents.
const Dir = "skills"
