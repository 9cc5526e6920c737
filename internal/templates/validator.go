package templates

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"

	oerrors "github.com/pkginit/cli/internal/errors"
)

// ValidateRoot checks that root exists in source and is a directory.
func ValidateRoot(source afero.Fs, root string) error {
	info, err := source.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return oerrors.NewNotFoundError(
				"template directory not found",
				root,
				"pass an existing directory to --template or omit it to use a built-in template",
			)
		}
		return oerrors.WrapCause(oerrors.ErrFilesystem, err, "reading template "+root)
	}

	if !info.IsDir() {
		return oerrors.NewValidationError(
			"template is not a directory",
			root,
			"a template is a directory tree; pass its root directory",
		)
	}

	return nil
}
