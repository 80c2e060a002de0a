package main

import (
	"fmt"
	"path/filepath"

	"github.com/grit-scm/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newWriteTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-tree [dir]",
		Short: "Snapshot a directory into the object store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			dir := r.RootDir
			if len(args) > 0 {
				dir, err = filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolve path: %w", err)
				}
			}

			h, err := r.WriteTree(dir)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h.Hex())
			return nil
		},
	}
}
