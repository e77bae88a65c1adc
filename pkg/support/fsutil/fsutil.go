// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains utilities for working with the file system: home directory expansion,
// existence checks and resolution of dataset paths against a data root.
package fsutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileExists reports whether path (a file or a directory) exists. Errors other than "not exist", e.g. permission
// denied on a parent directory, are returned.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrapf(err, "failed to check whether %q exists", path)
	}
}

// ReplaceTildeInDir replaces a leading "~" (current user) or "~name" (user name) by the user's home directory.
// Paths not starting with "~" are returned unchanged.
func ReplaceTildeInDir(dir string) (string, error) {
	rest, found := strings.CutPrefix(dir, "~")
	if !found {
		return dir, nil
	}
	userName, tail, _ := strings.Cut(rest, "/")
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to find the home directory for %q", dir)
	}
	return filepath.Join(usr.HomeDir, tail), nil
}

// ErrUnknownVariable is returned (wrapped) by ResolvePath when a "$name" reference can't be resolved.
var ErrUnknownVariable = errors.New("unknown path variable")

// ResolvePath converts a logical path into a filesystem path:
//
//   - "$name" and "${name}" are replaced by vars[name], or by the environment variable of the same
//     name if vars doesn't define it. An undefined variable is an error (ErrUnknownVariable).
//   - A leading "~" is replaced by the user's home directory.
//   - Relative paths are joined to root (if root is not empty).
//
// The returned path is cleaned, but it is not checked for existence.
func ResolvePath(p, root string, vars map[string]string) (string, error) {
	var missing []string
	expanded := os.Expand(p, func(name string) string {
		if value, found := vars[name]; found {
			return value
		}
		if value, found := os.LookupEnv(name); found {
			return value
		}
		missing = append(missing, name)
		return ""
	})
	if len(missing) > 0 {
		return "", errors.Wrapf(ErrUnknownVariable, "resolving %q: variable(s) %q not defined", p, missing)
	}
	expanded, err := ReplaceTildeInDir(expanded)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) && root != "" {
		root, err = ReplaceTildeInDir(root)
		if err != nil {
			return "", err
		}
		expanded = filepath.Join(root, expanded)
	}
	return filepath.Clean(expanded), nil
}
