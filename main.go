// SPDX-License-Identifier: MPL-2.0

package main

import cmd "modwire-cli/cmd/modwire"

func main() {
	cmd.Execute()
}
