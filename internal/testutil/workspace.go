// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// WriteWorkspace writes a workspace Cargo.toml declaring members in order.
func WriteWorkspace(t testing.TB, root string, members ...string) {
	t.Helper()
	quoted := make([]string, len(members))
	for i, m := range members {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	MustWriteFile(t, filepath.Join(root, "Cargo.toml"),
		fmt.Sprintf("[workspace]\nmembers = [%s]\nresolver = \"2\"\n", strings.Join(quoted, ", ")))
}

// WritePackage writes <root>/<dir>/Cargo.toml declaring name and version.
func WritePackage(t testing.TB, root, dir, name, version string) {
	t.Helper()
	MustWriteFile(t, filepath.Join(root, dir, "Cargo.toml"),
		fmt.Sprintf("[package]\nname = %q\nversion = %q\nedition = \"2021\"\n", name, version))
}
