package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/codec"
	"github.com/spf13/cobra"
)

func readFile(cmd *cobra.Command, path string, c codec.Codec) (vecmath.Vector, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	v, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func codecFlag(name string) (codec.Codec, error) {
	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", name)
	}
	return c, nil
}

func describe(w io.Writer, name string, v vecmath.Vector) {
	length := int64(v.Length())
	if lv, ok := v.(vecmath.LargeVector); ok {
		length = lv.LargeLength()
	}

	fmt.Fprintf(w, "%s\tkind=%s\tlength=%d", name, v.Kind(), length)
	switch sv := v.(type) {
	case vecmath.SparseVector:
		fmt.Fprintf(w, "\tpopulated=%d", sv.Populated())
	case vecmath.BitVector:
		fmt.Fprintf(w, "\tcardinality=%d", sv.Cardinality())
	}
	if length > 0 && length <= int64(maxInspectLength) {
		fmt.Fprintf(w, "\tsum=%g\tmin=%g\tmax=%g", v.Sum(), v.Min(), v.Max())
	}
	fmt.Fprintln(w)
}

// maxInspectLength bounds the vectors whose reductions inspect prints.
const maxInspectLength = 1 << 24

func newInspectCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Print kind, length and reductions of vector files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codecFlag(from)
			if err != nil {
				return err
			}
			for _, path := range args {
				v, err := readFile(cmd, path, c)
				if err != nil {
					return err
				}
				describe(cmd.OutOrStdout(), path, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", codec.Default.Name(), "codec of the input files")
	return cmd
}

func newConvertCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Re-encode a vector file with another codec",
		Long: `Re-encode a vector file. Use "-" for stdin or stdout.

  vectool convert --to zstd a.vec a.zst
  vectool convert --from zstd a.zst -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := codecFlag(from)
			if err != nil {
				return err
			}
			out, err := codecFlag(to)
			if err != nil {
				return err
			}

			v, err := readFile(cmd, args[0], in)
			if err != nil {
				return err
			}
			data, err := out.Encode(v)
			if err != nil {
				return err
			}

			if args[1] == "-" {
				_, err = io.Copy(cmd.OutOrStdout(), bytes.NewReader(data))
				return err
			}
			return os.WriteFile(args[1], data, 0o644)
		},
	}
	cmd.Flags().StringVar(&from, "from", codec.Default.Name(), "codec of the input file")
	cmd.Flags().StringVar(&to, "to", codec.Default.Name(), "codec of the output file")
	return cmd
}

func newDotCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "dot A B",
		Short: "Print the dot product of two vector files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codecFlag(from)
			if err != nil {
				return err
			}
			a, err := readFile(cmd, args[0], c)
			if err != nil {
				return err
			}
			b, err := readFile(cmd, args[1], c)
			if err != nil {
				return err
			}

			dot, err := a.DotProduct(b)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", dot)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", codec.Default.Name(), "codec of the input files")
	return cmd
}
