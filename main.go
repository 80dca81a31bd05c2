// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/lintd/taskops/cmd/taskops"

func main() {
	cmd.Execute(nil)
}
