package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/pkginit/cli/internal/errors"
	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/placeholder"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
	execPerm fs.FileMode = 0o755
)

// Materializer copies a template tree from Source into Target, substituting
// placeholders in paths and contents. It never touches a target path that
// already exists.
type Materializer struct {
	// Source holds the template roots.
	Source afero.Fs

	// Target is where packages are generated.
	Target afero.Fs
}

// NewMaterializer creates a Materializer.
func NewMaterializer(source, target afero.Fs) *Materializer {
	return &Materializer{Source: source, Target: target}
}

// Materialize walks root in Source and writes the substituted tree under
// req.TargetRoot in Target.
//
// Entries whose target path already exists are skipped, directories
// included; the children of a skipped directory are still visited. Entries
// that are neither regular files nor directories are ignored. A failure
// stops the walk and leaves whatever was already written in place.
func (m *Materializer) Materialize(root string, req Request) (*Result, error) {
	if err := ValidateRoot(m.Source, root); err != nil {
		return nil, err
	}

	result := &Result{
		TargetRoot: req.TargetRoot,
		Template:   root,
		Created:    []string{},
		Skipped:    []string{},
		Ignored:    []string{},
	}

	if err := m.Target.MkdirAll(req.TargetRoot, dirPerm); err != nil {
		return result, oerrors.WrapCause(oerrors.ErrFilesystem, err, "creating "+req.TargetRoot)
	}

	log := output.PackageLogger(req.Context.Name)
	log.Debug("materializing template", "root", root, "target", req.TargetRoot, "name", req.Context.Name)

	err := afero.Walk(m.Source, root, func(srcPath string, info fs.FileInfo, err error) error {
		if err != nil {
			return oerrors.WrapCause(oerrors.ErrFilesystem, err, "reading template "+srcPath)
		}
		if srcPath == root {
			return nil
		}

		rel, err := relSlash(root, srcPath)
		if err != nil {
			return err
		}
		entry := Entry{RelPath: rel, IsDir: info.IsDir()}

		status, outRel, err := m.materializeEntry(entry, srcPath, info, req)
		if err != nil {
			return err
		}

		if entry.IsDir {
			outRel += "/"
		}
		switch status {
		case output.StatusCreated:
			result.Created = append(result.Created, outRel)
		case output.StatusSkipped:
			result.Skipped = append(result.Skipped, outRel)
		case output.StatusIgnored:
			result.Ignored = append(result.Ignored, entry.RelPath)
		}
		log.Debug(status, "path", outRel)
		return nil
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

// materializeEntry handles a single template entry and returns what was
// done along with the target-relative output path.
func (m *Materializer) materializeEntry(entry Entry, srcPath string, info fs.FileInfo, req Request) (string, string, error) {
	if !entry.IsDir && !info.Mode().IsRegular() {
		return output.StatusIgnored, entry.RelPath, nil
	}

	outRel := placeholder.SubstitutePath(entry.RelPath, req.Context)
	dest, err := joinWithin(req.TargetRoot, outRel)
	if err != nil {
		return "", outRel, err
	}

	exists, err := m.exists(dest)
	if err != nil {
		return "", outRel, oerrors.WrapCause(oerrors.ErrFilesystem, err, "checking "+dest)
	}
	if exists {
		return output.StatusSkipped, outRel, nil
	}

	if entry.IsDir {
		if err := m.Target.MkdirAll(dest, dirPerm); err != nil {
			return "", outRel, oerrors.WrapCause(oerrors.ErrFilesystem, err, "creating directory "+dest)
		}
		return output.StatusCreated, outRel, nil
	}

	if err := m.Target.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return "", outRel, oerrors.WrapCause(oerrors.ErrFilesystem, err, "creating directory for "+dest)
	}

	content, err := afero.ReadFile(m.Source, srcPath)
	if err != nil {
		return "", outRel, oerrors.WrapCause(oerrors.ErrFilesystem, err, "reading template "+srcPath)
	}

	text := string(content)
	if placeholder.HasPlaceholders(text) {
		text = placeholder.Substitute(text, req.Context)
	}

	perm := filePerm
	if info.Mode().Perm()&0o111 != 0 {
		perm = execPerm
	}

	if err := afero.WriteFile(m.Target, dest, []byte(text), perm); err != nil {
		return "", outRel, oerrors.WrapCause(oerrors.ErrFilesystem, err, "writing "+dest)
	}
	return output.StatusCreated, outRel, nil
}

// exists reports whether anything occupies p. Symlinks are not followed
// where the filesystem allows it, so a dangling link counts as present.
func (m *Materializer) exists(p string) (bool, error) {
	var err error
	if lst, ok := m.Target.(afero.Lstater); ok {
		_, _, err = lst.LstatIfPossible(p)
	} else {
		_, err = m.Target.Stat(p)
	}
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// joinWithin joins a slash-separated relative path onto root and rejects
// results that are empty or leave root.
func joinWithin(root, rel string) (string, error) {
	clean := path.Clean(rel)
	if rel == "" || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("template path %q resolves outside the target directory", rel),
			root,
			"check placeholder values and template file names",
		)
	}
	return filepath.Join(root, filepath.FromSlash(clean)), nil
}

// relSlash returns p relative to root using forward slashes.
func relSlash(root, p string) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", p, err)
	}
	return filepath.ToSlash(rel), nil
}

func trimTemplateSuffix(p string) string {
	return strings.TrimSuffix(p, placeholder.TemplateSuffix)
}
