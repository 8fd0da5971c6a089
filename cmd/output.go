package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// ANSI colors, disabled when stdout is not a terminal.

func colorize(code, s string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return s
	}
	return code + s + "\033[0m"
}

func colorGreen(s string) string  { return colorize("\033[32m", s) }
func colorYellow(s string) string { return colorize("\033[33m", s) }
func colorRed(s string) string    { return colorize("\033[31m", s) }
func colorBold(s string) string   { return colorize("\033[1m", s) }

// newTable returns a tabwriter for aligned list output.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, columns ...string) {
	fmt.Fprintln(w, strings.Join(columns, "\t"))
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError writes an error panel with a retry hint for transient
// backend failures.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// confirm asks a yes/no question and returns true only on an explicit yes.
func confirm(question string) bool {
	fmt.Printf("%s %s [y/N]: ", colorYellow("⚠"), question)
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}
