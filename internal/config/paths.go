package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains standard filesystem paths for pkginit.
type Paths struct {
	// ConfigFile is the path to the config file (~/.pkginit/config.yaml).
	ConfigFile string

	// HomeDir is the pkginit home directory (~/.pkginit).
	HomeDir string

	// TemplatesDir holds named user templates
	// ($XDG_DATA_HOME/pkginit/templates).
	TemplatesDir string
}

// DefaultPaths returns the default paths for pkginit.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".pkginit")

	return &Paths{
		ConfigFile:   filepath.Join(home, "config.yaml"),
		HomeDir:      home,
		TemplatesDir: filepath.Join(xdg.DataHome, "pkginit", "templates"),
	}, nil
}

// GetConfigFile returns the config file path.
// If PKGINIT_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("PKGINIT_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// UserTemplatePath returns the directory of the named user template when
// it exists, else "". Names containing a path separator are never looked up.
func UserTemplatePath(name string) (string, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return "", nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(paths.TemplatesDir, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", nil
	}
	return dir, nil
}

// ListUserTemplates returns the names of the templates in the user
// templates directory. A missing directory yields no templates.
func ListUserTemplates() ([]string, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(paths.TemplatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
