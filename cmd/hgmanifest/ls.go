package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kezhuw/hgmanifest"
	"github.com/kezhuw/hgmanifest/internal/filenodes"
)

type lsFlags struct {
	store       string
	historyDSN  string
	recursive   bool
	parents     bool
	strict      bool
	concurrency int
}

func (c *cli) lsCmd() *cobra.Command {
	var flags lsFlags
	cmd := &cobra.Command{
		Use:   "ls HASH",
		Short: "List a manifest held by a store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := hgmanifest.ParseHash(args[0])
			if err != nil {
				return err
			}
			dir, err := hgmanifest.OpenDirStore(flags.store, &hgmanifest.DirStoreOptions{ReadOnly: true})
			if err != nil {
				return err
			}
			defer dir.Close()

			ctx := cmd.Context()
			var store hgmanifest.Store = dir
			if flags.historyDSN != "" {
				history, err := filenodes.Open(ctx, flags.historyDSN)
				if err != nil {
					return err
				}
				defer history.Close()
				store = hgmanifest.ComposeStore(dir, history)
			}

			repo := hgmanifest.New(store, &hgmanifest.Options{
				Logger:           c.logger.Sugar(),
				FetchConcurrency: flags.concurrency,
				StrictParse:      flags.strict,
			})
			m, err := repo.Manifest(ctx, id)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			visit := func(e *hgmanifest.Entry) error {
				return printEntry(cmd, w, e, flags.parents)
			}
			if flags.recursive {
				return m.Walk(ctx, visit)
			}
			listing := m.List()
			defer listing.Close()
			for listing.Next() {
				if err := visit(listing.Item()); err != nil {
					return err
				}
			}
			return listing.Err()
		},
	}
	cmd.Flags().StringVar(&flags.store, "store", "", "store directory")
	cmd.Flags().StringVar(&flags.historyDSN, "history-dsn", "", "postgres DSN of a filenodes table to resolve history from")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "R", false, "descend into nested manifests")
	cmd.Flags().BoolVar(&flags.parents, "parents", false, "print parents of each entry")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "reject unordered nested manifests")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "concurrent fetches while descending, 0 for default")
	cmd.MarkFlagRequired("store")
	return cmd
}

func printEntry(cmd *cobra.Command, w io.Writer, e *hgmanifest.Entry, withParents bool) error {
	ctx := cmd.Context()
	size := "-"
	if e.Type() != hgmanifest.Tree {
		n, ok, err := e.Size(ctx)
		if err != nil {
			return err
		}
		if ok {
			size = fmt.Sprint(n)
		}
	}
	line := fmt.Sprintf("%-10s %s %8s %s", e.Type(), e.Hash(), size, e.Path().Path())
	if withParents {
		parents, err := e.Parents(ctx)
		if err != nil {
			return err
		}
		line += " " + parents.String()
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
