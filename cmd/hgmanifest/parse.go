package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kezhuw/hgmanifest"
	"github.com/kezhuw/hgmanifest/internal/errors"
)

func (c *cli) parseCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print entries of a flat manifest file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := readManifest(args[0], strict)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			m.Range(func(path hgmanifest.Path, d hgmanifest.Details) bool {
				fmt.Fprintf(w, "%-10s %s %s\n", d.Type, d.ID, path)
				return true
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unordered or duplicate lines")
	return cmd
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE",
		Short: "Check a manifest file parses strictly and regenerates byte for byte",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, data, err := readManifest(args[0], true)
			if err != nil {
				return err
			}
			data = manifestPrefix(data)
			generated := m.Bytes()
			if !bytes.Equal(generated, data) {
				return errors.Errorf("hgmanifest: %s: regenerated manifest differs at byte %d", args[0], mismatch(generated, data))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d entries\n", args[0], m.Len())
			return nil
		},
	}
}

func readManifest(name string, strict bool) (*hgmanifest.Manifest, []byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, nil, err
	}
	parse := hgmanifest.Parse
	if strict {
		parse = hgmanifest.ParseStrict
	}
	m, err := parse(hgmanifest.Parents{}, data)
	if err != nil {
		return nil, nil, errors.Wrap(err, name)
	}
	return m, data, nil
}

// manifestPrefix returns the lines of data before the first empty line,
// which is all that parsing looks at.
func manifestPrefix(data []byte) []byte {
	i := 0
	for i < len(data) && data[i] != '\n' {
		j := bytes.IndexByte(data[i:], '\n')
		if j < 0 {
			return data
		}
		i += j + 1
	}
	return data[:i]
}

func mismatch(a, b []byte) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}
