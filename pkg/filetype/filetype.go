// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package filetype maps file extensions to the comment delimiters that
// surround placeholder markers.
package filetype

import (
	"path/filepath"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Fallback is the extension key used when no specific extension matches
const Fallback = ".*"

// line comment types end their comment at the line break
const lineEnd = "\n"

var (
	// ErrUnknownFileType means neither the extension nor the fallback is registered
	ErrUnknownFileType = errors.Base("Unknown FileType")

	ErrEmptyCommentStart = errors.Base("FileType.CommentStart is empty.")
	ErrEmptyCommentEnd   = errors.Base("FileType.CommentEnd is empty.")
)

// 📄 FileType describes how comments are written in one kind of file
type FileType struct {
	Name         string `json:"name" yaml:"name"`
	CommentStart string `json:"comment_start" yaml:"comment_start"`
	CommentEnd   string `json:"comment_end" yaml:"comment_end"`
}

// 🔍 Validate checks that both delimiters are set
func (ft FileType) Validate() error {
	if ft.CommentStart == "" {
		return ErrEmptyCommentStart
	}
	if ft.CommentEnd == "" {
		return ErrEmptyCommentEnd
	}
	return nil
}

// IsLineComment reports whether comments run to the end of the line
func (ft FileType) IsLineComment() bool {
	return ft.CommentEnd == lineEnd
}

// 🗂️ Registry maps lower-cased extensions to file types
type Registry struct {
	byExt map[string]FileType
}

// 🏭 NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]FileType)}
}

// 🏭 Defaults creates a registry with the built-in file types
func Defaults() *Registry {
	r := NewRegistry()

	block := func(name string) FileType { return FileType{Name: name, CommentStart: "/*", CommentEnd: "*/"} }
	markup := func(name string) FileType { return FileType{Name: name, CommentStart: "<!--", CommentEnd: "-->"} }
	hash := func(name string) FileType { return FileType{Name: name, CommentStart: "#", CommentEnd: lineEnd} }

	r.Register(".ps1", FileType{Name: "Powershell", CommentStart: "<#", CommentEnd: "#>"})
	r.Register(".js", block("Javascript"))
	r.Register(".jsx", block("Javascript"))
	r.Register(".ts", block("Typescript"))
	r.Register(".tsx", block("Typescript"))
	r.Register(".cs", block("C#"))
	r.Register(".sql", block("SQL"))
	r.Register(".go", block("Go"))
	r.Register(".css", block("CSS"))
	r.Register(".java", block("Java"))
	r.Register(".c", block("C"))
	r.Register(".h", block("C"))
	r.Register(".html", markup("HTML"))
	r.Register(".xml", markup("XML"))
	r.Register(".md", markup("Markdown"))
	r.Register(".vue", markup("Vue"))
	r.Register(".svelte", markup("Svelte"))
	r.Register(".sh", hash("Shell"))
	r.Register(".py", hash("Python"))
	r.Register(".yaml", hash("YAML"))
	r.Register(".yml", hash("YAML"))
	r.Register(".toml", hash("TOML"))
	r.Register(Fallback, block("Default"))

	return r
}

// normalizeExt lower-cases ext and adds the leading dot
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Register adds or replaces the file type for ext
func (r *Registry) Register(ext string, ft FileType) {
	if r.byExt == nil {
		r.byExt = make(map[string]FileType)
	}
	r.byExt[normalizeExt(ext)] = ft
}

// 🎯 Lookup finds the file type for path by its extension, falling back to
// the ".*" entry
func (r *Registry) Lookup(path string) (FileType, error) {
	if r != nil {
		if ft, ok := r.byExt[normalizeExt(filepath.Ext(path))]; ok {
			return ft, nil
		}
		if ft, ok := r.byExt[Fallback]; ok {
			return ft, nil
		}
	}
	return FileType{}, errors.Errorf("%w: %s", ErrUnknownFileType, path)
}

// Extensions returns the registered extensions, sorted
func (r *Registry) Extensions() []string {
	if r == nil {
		return nil
	}
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Len returns the number of registered extensions
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byExt)
}

// 🔧 FromMap builds a registry from configured types. Configured types
// replace the defaults entirely; an empty map yields the defaults.
func FromMap(types map[string]FileType) *Registry {
	if len(types) == 0 {
		return Defaults()
	}
	r := NewRegistry()
	for ext, ft := range types {
		r.Register(ext, ft)
	}
	return r
}
