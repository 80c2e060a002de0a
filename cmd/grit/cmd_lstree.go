package main

import (
	"fmt"
	"io"

	"github.com/grit-scm/grit/pkg/object"
	"github.com/grit-scm/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	var nameOnly bool

	cmd := &cobra.Command{
		Use:   "ls-tree <hash>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := object.ParseHash(args[0])
			if err != nil {
				return err
			}
			tree, err := r.Store.ReadTree(h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if nameOnly {
				for _, e := range tree.Entries {
					fmt.Fprintln(out, e.Name)
				}
				return nil
			}
			printTree(out, tree)
			return nil
		},
	}

	cmd.Flags().BoolVar(&nameOnly, "name-only", false, "list only entry names")

	return cmd
}

func printTree(out io.Writer, tree *object.Tree) {
	for _, e := range tree.Entries {
		kind := object.TypeBlob
		if e.Mode == object.ModeDir {
			kind = object.TypeTree
		}
		// Zero-pad to git's 6-digit display form ("040000").
		mode := e.Mode
		for len(mode) < 6 {
			mode = "0" + mode
		}
		fmt.Fprintf(out, "%s %s %s\t%s\n", mode, kind, e.Hash.Hex(), e.Name)
	}
}
