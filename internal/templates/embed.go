// Package templates provides the built-in template roots and materializes
// template trees into a destination directory.
package templates

import (
	"embed"
	"io/fs"

	"github.com/spf13/afero"
)

// builtinFS holds every built-in template root. The all: prefix keeps
// dotfiles and names starting with an underscore, which placeholder files do.
//
//go:embed all:builtin
var builtinFS embed.FS

// BuiltinFS returns the built-in template roots as a read-only afero
// filesystem. Each root sits at the top level under its template name.
func BuiltinFS() afero.Fs {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// "builtin" is a constant valid path; fs.Sub cannot fail on it.
		panic(err)
	}
	return afero.FromIOFS{FS: sub}
}

// ListTemplateFiles returns the output paths of every file in a template
// root, with placeholders left unsubstituted and .template suffixes removed.
func ListTemplateFiles(source afero.Fs, root string) ([]string, error) {
	var files []string

	err := afero.Walk(source, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := relSlash(root, path)
		if err != nil {
			return err
		}
		files = append(files, trimTemplateSuffix(rel))
		return nil
	})

	return files, err
}
