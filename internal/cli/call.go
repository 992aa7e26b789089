package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/query"
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [json-args]",
	Short: "Run a query tool",
	Long: `Run one of the named query tools with a JSON object of arguments and print
the JSON result. Without a tool name, list the available tools.

Examples:
  hooklog call
  hooklog call get_dashboard '{"top": 5}'
  hooklog call search_events '{"tool": "Bash", "text": "go test"}'`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if flagJSON {
			return printJSON(out, app.Tools.List())
		}
		tw := newTable(out)
		for _, t := range app.Tools.List() {
			fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Description)
		}
		return tw.Flush()
	}

	callArgs := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &callArgs); err != nil || callArgs == nil {
			return fmt.Errorf("%w: arguments must be a JSON object", query.ErrInvalidArgument)
		}
	}
	if _, ok := callArgs["file"]; !ok && flagFile != "" {
		callArgs["file"] = flagFile
	}

	result, err := app.Tools.Call(cmd.Context(), args[0], callArgs)
	if err != nil {
		return err
	}
	return printJSON(out, result)
}
