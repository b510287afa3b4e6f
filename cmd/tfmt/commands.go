package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagfmt/tfmt"
	"github.com/tagfmt/tfmt/tags"
)

// errFailed is returned once a command has already reported its errors.
var errFailed = errors.New("failed")

func (a *app) compile(cmd *cobra.Command, path string) (*tfmt.Script, error) {
	opts, err := a.tfmtOptions(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	script, err := tfmt.CompileFile(path, opts...)
	if err != nil {
		a.printError(cmd.ErrOrStderr(), err)
		return nil, errFailed
	}
	return script, nil
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <script>",
		Short: "Check a script for syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := a.compile(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s(%s)\n", a.green(out, "ok"), script.Name(),
				strings.Join(script.Parameters(), ", "))
			if d := script.Description(); d != "" {
				fmt.Fprintf(out, "  %s\n", d)
			}
			return nil
		},
	}
}

func (a *app) astCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <script>",
		Short: "Print the fully parenthesized syntax tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := a.compile(cmd, args[0])
			if err != nil {
				return err
			}
			program := script.Program()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s(", program.Name.Literal)
			for i, p := range program.Parameters {
				if i > 0 {
					fmt.Fprint(out, ", ")
				}
				fmt.Fprint(out, p.String())
			}
			fmt.Fprintln(out, ")")
			for _, expr := range program.Block.Exprs {
				fmt.Fprintf(out, "  %s\n", expr)
			}
			return nil
		},
	}
}

type runResult struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (a *app) runCmd() *cobra.Command {
	var (
		tagsFile   string
		scriptArgs []string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "run <script> --tags <file> [--arg value]...",
		Short: "Compute the destination of every file in a tags file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("unknown output format: %s", output)
			}
			script, err := a.compile(cmd, args[0])
			if err != nil {
				return err
			}
			inv, err := script.Bind(scriptArgs...)
			if err != nil {
				a.printError(cmd.ErrOrStderr(), err)
				return errFailed
			}
			entries, err := tags.LoadFile(tagsFile)
			if err != nil {
				return err
			}
			outcomes, batchErr := inv.RunBatch(cmd.Context(), entries)
			if output == "json" {
				if err := a.printJSON(cmd, outcomes); err != nil {
					return err
				}
			} else {
				a.printText(cmd, outcomes)
			}
			if batchErr != nil {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tagsFile, "tags", "t", "", "YAML or JSON file listing files and their tags")
	cmd.Flags().StringArrayVarP(&scriptArgs, "arg", "a", nil, "script argument, in parameter order (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	_ = cmd.MarkFlagRequired("tags")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (a *app) printText(cmd *cobra.Command, outcomes []tfmt.Outcome) {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	for _, o := range outcomes {
		if o.OK() {
			fmt.Fprintf(out, "%s -> %s\n", o.Entry.Path, o.Target)
			continue
		}
		fmt.Fprintln(errOut, a.red(errOut, o.Entry.Path+":"))
		a.printError(errOut, o.Err)
	}
}

func (a *app) printJSON(cmd *cobra.Command, outcomes []tfmt.Outcome) error {
	results := make([]runResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = runResult{Path: o.Entry.Path, Target: o.Target}
		if o.Err != nil {
			results[i].Error = o.Err.Error()
		}
	}
	data, err := a.marshalJSON(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
