package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/symbridge/symbridge"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive operation dispatch",
	Long: `Start an interactive session for dispatching operations.

Input forms:
  <op> <expr-json> [args-json]   dispatch an operation
  ops                            list the allowlist
  help <op>                      show an operation's signature
  exit / quit                    end the session (or Ctrl+D)

Example:
  >>> sqrt_depth {"type": "pow", "base": {"type": "num", "value": "2"}, "exp": {"type": "num", "value": "1/2"}}
  1`,
	Run: runRepl,
}

func init() {
	replCmd.Flags().String("history", "", "History file path (default: ~/.symbridge_history)")
	replCmd.Flags().Bool("repair", false, "Repair malformed JSON input before parsing")
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) {
	repair, _ := cmd.Flags().GetBool("repair")
	historyFile, _ := cmd.Flags().GetString("history")

	if historyFile == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		historyFile = cfg.HistoryFile
	}
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".symbridge_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            ">>> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "symbridge REPL (type 'ops' for operations, 'exit' to quit)")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if line == "ops" {
			for _, name := range symbridge.Names() {
				fmt.Println(name)
			}
			continue
		}
		if rest, ok := strings.CutPrefix(line, "help "); ok {
			name := strings.TrimSpace(rest)
			sig, ok := symbridge.Lookup(name)
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: unknown operation %q\n", name)
				continue
			}
			fmt.Printf("%s\n  %s\n", sig.String(), sig.Summary)
			continue
		}

		if err := dispatchLine(line, repair); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

// dispatchLine splits "<op> <expr-json> [args-json]" on JSON object
// boundaries and runs the call.
func dispatchLine(line string, repair bool) error {
	op, rest, ok := strings.Cut(line, " ")
	if !ok {
		return fmt.Errorf("usage: <op> <expr-json> [args-json]")
	}

	fn, err := symbridge.GetAttr(op)
	if err != nil {
		return err
	}

	exprSrc, argsSrc, err := splitJSONObjects(strings.TrimSpace(rest))
	if err != nil {
		return err
	}

	recv, err := parseExpr(exprSrc, repair)
	if err != nil {
		return err
	}

	var kwargs symbridge.Args
	if argsSrc != "" {
		kwargs, err = parseArgs(argsSrc, repair)
		if err != nil {
			return err
		}
	}

	out, err := fn(recv, kwargs)
	if err != nil {
		return err
	}
	display, err := renderResult(out)
	if err != nil {
		return err
	}
	fmt.Println(display)
	return nil
}

// splitJSONObjects separates the expression object from an optional
// trailing args object by brace depth, ignoring braces inside strings.
func splitJSONObjects(src string) (expr, args string, err error) {
	if src == "" || src[0] != '{' {
		return "", "", fmt.Errorf("expected a JSON object, got %q", src)
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				rest := strings.TrimSpace(src[i+1:])
				return src[:i+1], rest, nil
			}
		}
	}
	return "", "", fmt.Errorf("unbalanced braces in %q", src)
}
