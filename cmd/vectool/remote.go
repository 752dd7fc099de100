package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/archive"
	"github.com/hupe1980/vecmath/codec"
	"github.com/spf13/cobra"
)

func (f *rootFlags) openArchive(cmd *cobra.Command) (*archive.Archive, error) {
	cfg, err := f.archiveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openArchive(cmd.Context(), cfg)
}

func newPutCmd(flags *rootFlags) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "put NAME FILE",
		Short: "Store a vector file in the archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codecFlag(from)
			if err != nil {
				return err
			}
			v, err := readFile(cmd, args[1], c)
			if err != nil {
				return err
			}

			arc, err := flags.openArchive(cmd)
			if err != nil {
				return err
			}
			return arc.Put(cmd.Context(), args[0], v)
		},
	}
	cmd.Flags().StringVar(&from, "from", codec.Default.Name(), "codec of the input file")
	return cmd
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "get NAME...",
		Short: "Print archived vectors in the text format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := flags.openArchive(cmd)
			if err != nil {
				return err
			}

			vectors, err := arc.GetMany(cmd.Context(), args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			for _, v := range vectors {
				if err := vecmath.Write(w, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "list [PREFIX]",
		Short: "List archived vectors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := flags.openArchive(cmd)
			if err != nil {
				return err
			}

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			names, err := arc.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, name := range names {
				if !long {
					fmt.Fprintln(w, name)
					continue
				}
				info, err := arc.Stat(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\tkind=%s\tlength=%d\tcodec=%s\tbytes=%d\n",
					info.Name, info.Kind, info.Length, info.Codec, info.Size)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show kind, length, codec and size")
	return cmd
}

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME...",
		Short: "Delete archived vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := flags.openArchive(cmd)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := arc.Delete(cmd.Context(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
