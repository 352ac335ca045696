package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/symbridge/symbridge"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the allowed operations",
	Run:   runOps,
}

func init() {
	opsCmd.Flags().BoolP("long", "l", false, "Show signatures and summaries")
	opsCmd.Flags().Bool("json", false, "Emit the manifest as JSON")
	rootCmd.AddCommand(opsCmd)
}

func runOps(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")
	long, _ := cmd.Flags().GetBool("long")

	if asJSON {
		data, err := json.MarshalIndent(symbridge.Manifest(), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}
	if !long {
		for _, name := range symbridge.Names() {
			fmt.Println(name)
		}
		return
	}
	for _, sig := range symbridge.Manifest() {
		fmt.Printf("%-60s %s\n", sig.String(), sig.Summary)
	}
}
