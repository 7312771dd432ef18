// Package treegen materializes file trees described with a fluent builder,
// optionally rendering file contents through text/template.
//
//	tree := treegen.New()
//	tree.File("README.md", "# demo\n")
//	src := tree.Dir("src")
//	src.Tpl("main.go", "package {{.Pkg}}\n", map[string]string{"Pkg": "main"})
//	err := tree.Build("/tmp/demo")
package treegen

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/php-toolkit/fsutil"
)

// fileNode is a single file to create, either literal or templated
type fileNode struct {
	name    string
	content string
	tplText string
	tplData any
	isTpl   bool
}

// Tree describes one directory level. Dir returns a child Tree whose
// settings are a snapshot of the parent's at the time of the call, so
// later mutation of the parent never leaks into an already-created branch.
type Tree struct {
	name     string
	files    []fileNode
	children []*Tree
	funcs    template.FuncMap
}

// New creates an empty tree rooted at the build directory
func New() *Tree {
	return &Tree{}
}

// Funcs registers template functions available to Tpl files in this tree
// and in child contexts created afterwards
func (t *Tree) Funcs(funcs template.FuncMap) *Tree {
	if t.funcs == nil {
		t.funcs = template.FuncMap{}
	}
	for name, fn := range funcs {
		t.funcs[name] = fn
	}
	return t
}

// Dir adds a subdirectory and returns its builder context
func (t *Tree) Dir(name string) *Tree {
	child := &Tree{name: name, funcs: cloneFuncs(t.funcs)}
	t.children = append(t.children, child)
	return child
}

// File adds a file with literal content
func (t *Tree) File(name, content string) *Tree {
	t.files = append(t.files, fileNode{name: name, content: content})
	return t
}

// Tpl adds a file whose content is rendered from a text/template with the
// given data. Rendering happens at Build time; a bad template fails the
// build with the file's path in the error.
func (t *Tree) Tpl(name, tplText string, data any) *Tree {
	t.files = append(t.files, fileNode{name: name, tplText: tplText, tplData: data, isTpl: true})
	return t
}

// Build creates the described tree under root, creating root itself if
// needed. Directories are created before their files; children build in
// insertion order.
func (t *Tree) Build(root string) error {
	dir := root
	if t.name != "" {
		dir = filepath.Join(root, t.name)
	}

	if err := fsutil.Mkdir(dir); err != nil {
		return err
	}

	for _, file := range t.files {
		path := filepath.Join(dir, file.name)

		content := file.content
		if file.isTpl {
			rendered, err := renderTemplate(path, file.tplText, file.tplData, t.funcs)
			if err != nil {
				return err
			}
			content = rendered
		}

		if err := fsutil.WriteString(path, content); err != nil {
			return err
		}
	}

	for _, child := range t.children {
		if err := child.Build(dir); err != nil {
			return err
		}
	}

	return nil
}

func renderTemplate(path, text string, data any, funcs template.FuncMap) (string, error) {
	tpl := template.New(filepath.Base(path))
	if funcs != nil {
		tpl = tpl.Funcs(funcs)
	}

	tpl, err := tpl.Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template for %s: %w", path, err)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template for %s: %w", path, err)
	}

	return buf.String(), nil
}

func cloneFuncs(funcs template.FuncMap) template.FuncMap {
	if funcs == nil {
		return nil
	}
	cloned := make(template.FuncMap, len(funcs))
	for name, fn := range funcs {
		cloned[name] = fn
	}
	return cloned
}
