package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphdb/internal/gerrors"
)

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <id1> <id2> [label=<s>] [weight=<n>]",
		Short: "Add an undirected edge between two vertices",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			var label *string
			var weight *float64
			for _, t := range args[2:] {
				k, v, ok := strings.Cut(t, "=")
				if !ok {
					continue
				}
				switch k {
				case "label":
					label = &v
				case "weight":
					f, err := strconv.ParseFloat(v, 64)
					if err != nil {
						return gerrors.Validation("weight %q is not numeric", v)
					}
					weight = &f
				}
			}
			if err := e.AddEdge(args[0], args[1], label, weight); err != nil {
				return err
			}
			fmt.Println("connected", args[0], args[1])
			return nil
		},
	}
}

func newDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <id1> <id2>",
		Short: "Remove the edge between two vertices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.DeleteEdge(args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("disconnected", args[0], args[1])
			return nil
		},
	}
}
