package main

import (
	"fmt"
	"path/filepath"

	"github.com/grit-scm/grit/pkg/object"
	"github.com/grit-scm/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <hash> <dest>",
		Short: "Materialize a commit, tree, or blob into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := object.ParseHash(args[0])
			if err != nil {
				return err
			}
			dest, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			if err := r.Checkout(h, dest); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked out %s to %s\n", h.Short(), dest)
			return nil
		},
	}
}
