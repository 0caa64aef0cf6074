package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kezhuw/hgmanifest"
	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/filenodes"
)

type putFlags struct {
	store      string
	path       string
	p1, p2     string
	tree       bool
	historyDSN string

	copyFrom string
	copyRev  string
}

// revision prepends filelog copy metadata to data when requested.
func (f *putFlags) revision(data []byte) ([]byte, error) {
	if f.copyFrom == "" && f.copyRev == "" {
		return data, nil
	}
	if _, err := hgmanifest.NewPath(f.copyFrom); err != nil {
		return nil, errors.Wrap(err, "--copy")
	}
	if _, err := hgmanifest.ParseHash(f.copyRev); err != nil {
		return nil, errors.Wrap(err, "--copy-rev")
	}
	kv := map[string]string{"copy": f.copyFrom, "copyrev": f.copyRev}
	return blob.EncodeMeta([]string{"copy", "copyrev"}, kv, data), nil
}

func (f *putFlags) repoPath() (hgmanifest.RepoPath, error) {
	if f.path == "" {
		return hgmanifest.RootPath(), nil
	}
	p, err := hgmanifest.NewPath(f.path)
	if err != nil {
		return hgmanifest.RepoPath{}, err
	}
	if f.tree {
		return hgmanifest.DirPath(p), nil
	}
	return hgmanifest.FilePath(p), nil
}

func (f *putFlags) parents() (hgmanifest.Parents, error) {
	var hashes [2]*hgmanifest.NodeHash
	for i, s := range []string{f.p1, f.p2} {
		if s == "" {
			continue
		}
		h, err := hgmanifest.ParseHash(s)
		if err != nil {
			return hgmanifest.Parents{}, err
		}
		hashes[i] = &h
	}
	return hgmanifest.NewParents(hashes[0], hashes[1]), nil
}

func (c *cli) putCmd() *cobra.Command {
	var flags putFlags
	cmd := &cobra.Command{
		Use:   "put FILE",
		Short: "Store a file or manifest node and print its hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.repoPath()
			if err != nil {
				return err
			}
			parents, err := flags.parents()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if data, err = flags.revision(data); err != nil {
				return err
			}

			store, err := hgmanifest.OpenDirStore(flags.store, nil)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			id, err := store.PutNode(ctx, path, parents, data)
			if err != nil {
				return err
			}
			c.logger.Info("stored node", zap.Stringer("path", path), zap.Stringer("node", id), zap.Int("size", len(data)))

			if flags.historyDSN != "" {
				history, err := filenodes.Open(ctx, flags.historyDSN)
				if err != nil {
					return err
				}
				defer history.Close()
				if err := history.Insert(ctx, path, id, parents); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.store, "store", "", "store directory")
	cmd.Flags().StringVar(&flags.path, "path", "", "repository path of the node, empty for the root manifest")
	cmd.Flags().StringVar(&flags.p1, "p1", "", "first parent hash")
	cmd.Flags().StringVar(&flags.p2, "p2", "", "second parent hash")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "node is a nested manifest")
	cmd.Flags().StringVar(&flags.historyDSN, "history-dsn", "", "postgres DSN of a filenodes table to record history in")
	cmd.Flags().StringVar(&flags.copyFrom, "copy", "", "path the file was copied from")
	cmd.Flags().StringVar(&flags.copyRev, "copy-rev", "", "file node hash the copy was taken from")
	cmd.MarkFlagsRequiredTogether("copy", "copy-rev")
	cmd.MarkFlagRequired("store")
	return cmd
}
