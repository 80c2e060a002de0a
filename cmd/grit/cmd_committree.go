package main

import (
	"fmt"
	"time"

	"github.com/grit-scm/grit/pkg/object"
	"github.com/grit-scm/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitTreeCmd() *cobra.Command {
	var message string
	var parentHexes []string
	var signKey string
	var updateRef bool

	cmd := &cobra.Command{
		Use:   "commit-tree <tree-hash>",
		Short: "Create a commit object from an existing tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			tree, err := object.ParseHash(args[0])
			if err != nil {
				return err
			}

			parents := make([]object.Hash, 0, len(parentHexes))
			for _, p := range parentHexes {
				ph, err := object.ParseHash(p)
				if err != nil {
					return fmt.Errorf("parent: %w", err)
				}
				parents = append(parents, ph)
			}

			name, email := r.UserIdent()
			now := time.Now()
			author := object.Ident{
				Name:  name,
				Email: email,
				When:  now.Unix(),
				TZ:    formatTZ(now),
			}

			var signer repo.CommitSigner
			if cmd.Flags().Changed("sign-key") {
				s, keyPath, err := newSSHCommitSigner(signKey)
				if err != nil {
					return err
				}
				signer = s
				fmt.Fprintf(cmd.ErrOrStderr(), "signing with %s\n", keyPath)
			}

			h, err := r.CreateCommit(tree, parents, message, author, signer)
			if err != nil {
				return err
			}

			// Ref advancement is deliberately the CLI's job, not the
			// core's.
			if updateRef {
				head, err := r.Head()
				if err != nil {
					return fmt.Errorf("read HEAD: %w", err)
				}
				if err := r.UpdateRef(head, h); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), h.Hex())
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringArrayVarP(&parentHexes, "parent", "p", nil, "parent commit hash (repeatable, order preserved)")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "SSH private key to sign the commit with (empty = default key)")
	cmd.Flags().BoolVar(&updateRef, "update-ref", false, "advance the current branch to the new commit")

	return cmd
}

// formatTZ renders a time's zone offset as git's ±HHMM form.
func formatTZ(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%02d%02d", sign, offset/3600, (offset%3600)/60)
}
