package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
)

func init() {
	errorsCmd.Flags().BoolP("external", "e", false, "Look the code up as an external code")
}

var errorsCmd = &cobra.Command{
	Use:   "errors [code]",
	Short: "List the error catalogue or look up one code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			printErrors(cmd.OutOrStdout(), sdkerr.All())
			return nil
		}

		code, err := strconv.Atoi(args[0])
		if err != nil {
			return fail(cmd, fmt.Errorf("invalid code %q", args[0]))
		}

		lookup := sdkerr.ByInternalCode
		if external, _ := cmd.Flags().GetBool("external"); external {
			lookup = sdkerr.ByExternalCode
		}

		e, ok := lookup(code)
		if !ok {
			return fail(cmd, fmt.Errorf("no error with code %d", code))
		}
		printErrors(cmd.OutOrStdout(), []*sdkerr.Error{e})
		return nil
	},
}

func printErrors(out io.Writer, errs []*sdkerr.Error) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINTERNAL\tEXTERNAL\tDOMAIN\tTITLE")
	for _, e := range errs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", e.Name, e.InternalCode, e.ExternalCode, e.Domain, e.Title)
	}
	w.Flush()
}
