package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newShellCmd implements the interactive shell: a read-eval-print loop
// over the same verbs the one-shot CLI exposes, plus the two shell-only
// meta commands `list` (list every vertex in the active database) and
// `quit` (clean exit, code 0). Per-command errors are printed and the
// shell continues.
func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive graphdb shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runShell(cmd.Root())
			return nil
		},
	}
}

func runShell(root *cobra.Command) {
	red := color.New(color.FgRed).SprintFunc()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("graphdb> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			if !dispatchShellLine(root, line, red) {
				return
			}
		}
		fmt.Print("graphdb> ")
	}
}

// dispatchShellLine runs one line of shell input. It returns false only
// for `quit`, which ends the loop.
func dispatchShellLine(root *cobra.Command, line string, red func(a ...interface{}) string) bool {
	tokens := tokenizeLine(line)
	if len(tokens) == 0 {
		return true
	}
	switch strings.ToLower(tokens[0]) {
	case "quit", "exit":
		return false
	case "list":
		runListAll()
		return true
	}

	root.SetArgs(tokens)
	if err := root.Execute(); err != nil {
		fmt.Println(red(err.Error()))
	}
	return true
}

func runListAll() {
	e, err := app.engine()
	if err != nil {
		fmt.Println(err)
		return
	}
	all := e.ListAllNodes()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Print(id, " ")
		printAttrs(all[id])
	}
}

// tokenizeLine splits a shell line on whitespace, treating a
// double-quoted run as a single token (with the quotes stripped) so that
// values like name="Mary Jane" survive as one token.
func tokenizeLine(s string) []string {
	var out []string
	var buf strings.Builder
	inQuote := false
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, buf.String())
			buf.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case (c == ' ' || c == '\t') && !inQuote:
			flush()
		default:
			buf.WriteByte(c)
		}
	}
	flush()
	return out
}
