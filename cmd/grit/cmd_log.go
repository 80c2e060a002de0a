package main

import (
	"fmt"
	"time"

	"github.com/grit-scm/grit/pkg/object"
	"github.com/grit-scm/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log [hash]",
		Short: "Show commit history (first-parent)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			var start object.Hash
			if len(args) > 0 {
				start, err = object.ParseHash(args[0])
			} else {
				start, err = r.ResolveRef("HEAD")
			}
			if err != nil {
				return fmt.Errorf("resolve start commit: %w", err)
			}

			entries, err := r.Log(start, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range entries {
				c := entry.Commit
				if oneline {
					fmt.Fprintf(out, "%s %s\n", entry.Hash.Short(), firstLine(c.Message))
					continue
				}
				fmt.Fprintf(out, "commit %s\n", entry.Hash.Hex())
				fmt.Fprintf(out, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
				fmt.Fprintf(out, "Date:   %s\n", time.Unix(c.Author.When, 0).UTC().Format("2006-01-02 15:04:05"))
				fmt.Fprintln(out)
				fmt.Fprintf(out, "    %s\n", firstLine(c.Message))
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "one line per commit")
	cmd.Flags().IntVarP(&limit, "max-count", "n", 100, "limit the number of commits shown")

	return cmd
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
