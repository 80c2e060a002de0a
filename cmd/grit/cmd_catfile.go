package main

import (
	"fmt"

	"github.com/grit-scm/grit/pkg/object"
	"github.com/grit-scm/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	var showType bool
	var prettyPrint bool

	cmd := &cobra.Command{
		Use:   "cat-file <hash>",
		Short: "Show the type or content of a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showType == prettyPrint {
				return fmt.Errorf("exactly one of -t or -p is required")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := object.ParseHash(args[0])
			if err != nil {
				return err
			}
			o, err := r.Store.ReadObject(h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showType {
				fmt.Fprintln(out, o.Kind())
				return nil
			}

			switch v := o.(type) {
			case *object.Blob:
				// Raw payload, no trailing newline added.
				_, err = out.Write(v.Data)
				return err
			case *object.Tree:
				printTree(out, v)
				return nil
			case *object.Commit:
				_, err = out.Write(object.MarshalCommit(v))
				return err
			default:
				return fmt.Errorf("cat-file %s: %w: %q", h, object.ErrUnsupportedType, o.Kind())
			}
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "print the object type")
	cmd.Flags().BoolVarP(&prettyPrint, "print", "p", false, "pretty-print the object content")

	return cmd
}
