package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/spf13/cobra"

	"github.com/symbridge/symbridge"
	"github.com/symbridge/symbridge/engine"
)

var callCmd = &cobra.Command{
	Use:   "call <op> <expr-json> [args-json]",
	Short: "Dispatch a single operation",
	Long: `Dispatch one allowlisted operation against an expression tree.

The expression is a JSON object, e.g.
  {"type": "add", "terms": [{"type": "sym", "name": "x"}, {"type": "num", "value": "1"}]}

Optional keyword arguments are a second JSON object, e.g. '{"n": 5}'.`,
	Args: cobra.RangeArgs(2, 3),
	Run:  runCall,
}

func init() {
	callCmd.Flags().Bool("repair", false, "Repair malformed JSON input before parsing")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) {
	repair, _ := cmd.Flags().GetBool("repair")

	fn, err := symbridge.GetAttr(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	recv, err := parseExpr(args[1], repair)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var kwargs symbridge.Args
	if len(args) == 3 {
		kwargs, err = parseArgs(args[2], repair)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := fn(recv, kwargs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	display, err := renderResult(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(display)
}

func parseExpr(src string, repair bool) (engine.Expr, error) {
	e, err := engine.Parse(src)
	if err == nil || !repair {
		return e, err
	}
	repaired, repairErr := jsonrepair.JSONRepair(src)
	if repairErr != nil {
		return nil, fmt.Errorf("%v (repair failed: %v)", err, repairErr)
	}
	return engine.Parse(repaired)
}

func parseArgs(src string, repair bool) (symbridge.Args, error) {
	decode := func(s string) (symbridge.Args, error) {
		var m map[string]any
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			return nil, err
		}
		return symbridge.Args(m), nil
	}
	a, err := decode(src)
	if err == nil || !repair {
		return a, err
	}
	repaired, repairErr := jsonrepair.JSONRepair(src)
	if repairErr != nil {
		return nil, fmt.Errorf("%v (repair failed: %v)", err, repairErr)
	}
	return decode(repaired)
}

func renderResult(out any) (string, error) {
	switch v := out.(type) {
	case engine.Expr:
		return v.String(), nil
	case []engine.Expr:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case bool, int, int64, float64, string:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("unrenderable result type %T", out)
}
