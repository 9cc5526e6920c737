package templates

import "github.com/pkginit/cli/internal/placeholder"

// Kind is the kind of package a template produces.
type Kind string

const (
	KindPackage  Kind = "package"
	KindTheme    Kind = "theme"
	KindLanguage Kind = "language"
)

// Template describes a built-in template root.
type Template struct {
	// Name is the template identifier and its root directory name.
	Name string

	// Kind is the kind of package generated.
	Kind Kind

	// Description explains the template's purpose.
	Description string

	// Default indicates the template is used for its kind when no
	// override or conversion is given.
	Default bool
}

// Entry is one directory or file found under a template root.
type Entry struct {
	// RelPath is the slash-separated path relative to the template root.
	RelPath string

	// IsDir reports whether the entry is a directory.
	IsDir bool
}

// Request carries everything a single materialization needs.
type Request struct {
	// TargetRoot is the absolute destination directory.
	TargetRoot string

	// Context holds the placeholder values.
	Context placeholder.Context
}

// Result records what a materialization did, as slash-separated paths
// relative to the target root. Directory paths end in "/".
type Result struct {
	// TargetRoot is the destination directory.
	TargetRoot string `json:"targetRoot"`

	// Template names the template root that was materialized.
	Template string `json:"template"`

	// Created lists entries written by this run.
	Created []string `json:"created"`

	// Skipped lists entries left alone because the target already existed.
	Skipped []string `json:"skipped"`

	// Ignored lists template entries that are neither files nor directories.
	Ignored []string `json:"ignored"`

	// Removed lists paths deleted after materialization.
	Removed []string `json:"removed,omitempty"`
}
