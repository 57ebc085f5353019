package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/cmdmail/cmd/cmdmail"
	"github.com/arthur-debert/cmdmail/pkg/style"
)

func main() {
	rootCmd := cmdmail.NewRootCmd()
	err := rootCmd.Execute()

	// the command's own failure was already reported by email
	var exitErr *cmdmail.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		errorStyle := style.For(os.Stderr).Error
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}

	os.Exit(cmdmail.ExitCode(err))
}
