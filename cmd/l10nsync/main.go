// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/l10nsync/cmd/l10nsync/cmd"
)

func main() {
	cmd.Execute()
}
