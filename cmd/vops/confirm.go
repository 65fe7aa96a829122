package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNotInteractive is returned when a destructive command would prompt
// but stdin cannot answer.
var errNotInteractive = errors.New("stdin is not a terminal; pass --yes to confirm")

// confirm prints warning and waits for the user to type "yes". skip
// bypasses the prompt. An interactive prompt on a non-terminal stdin is
// refused rather than read.
func confirm(cmd *cobra.Command, skip bool, warning string) (bool, error) {
	if skip {
		return true, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errNotInteractive
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "WARNING: %s\n", warning)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes", nil
	}
	return false, nil
}

// confirmOrAbort runs confirm and prints "Aborted." when the user declines.
// It reports whether the caller should proceed.
func confirmOrAbort(cmd *cobra.Command, skip bool, warning string) (bool, error) {
	ok, err := confirm(cmd, skip, warning)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
	}
	return ok, nil
}
