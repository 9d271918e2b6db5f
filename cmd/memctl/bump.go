package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
)

var (
	bumpSize    string
	bumpAllocs  []string
	bumpBacking string
)

func init() {
	cmd := newBumpCmd()
	cmd.Flags().StringVar(&bumpSize, "size", "1KiB", "Arena capacity (e.g. 1024, 1KiB, 4MB)")
	cmd.Flags().StringSliceVar(&bumpAllocs, "alloc", nil, "Comma-separated allocation sizes")
	cmd.Flags().StringVar(&bumpBacking, "backing", "auto", "Arena backing: auto, mapped or heap")
	rootCmd.AddCommand(cmd)
}

func newBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Run a sequence of bump allocations",
		Long: `The bump command reserves one arena and allocates the given sizes from it
in order. Requests that do not fit are reported and leave the cursor alone.

Example:
  memctl bump --size 1KiB --alloc 4,1021
  memctl bump --size 64 --alloc 16,16,16,16,1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump()
		},
	}
	return cmd
}

func runBump() error {
	size, err := parseSize(bumpSize)
	if err != nil {
		return err
	}
	backing, err := parseBacking(bumpBacking)
	if err != nil {
		return err
	}

	b := alloc.NewBump(alloc.BumpOptions{
		Reporter: alloc.SlogReporter(L),
		Backing:  backing,
	})
	if err := b.Create(size); err != nil {
		return fmt.Errorf("failed to create bump allocator: %w", err)
	}
	defer b.Destroy()

	printVerbose("Reserved %s (%s backing)\n", formatSize(b.MaxSize()), b.Backing())

	for i, s := range bumpAllocs {
		n, err := parseSize(s)
		if err != nil {
			return err
		}
		offset := b.Used()
		if _, err := b.Alloc(n); err != nil {
			if !jsonOut {
				printInfo("alloc #%d %d bytes: failed: %v\n", i, n, err)
			}
			continue
		}
		if !jsonOut {
			printInfo("alloc #%d %d bytes: offset %d\n", i, n, offset)
		}
	}

	if jsonOut {
		return printJSON(b.Stats())
	}
	printInfo("%s\n", b.Stats())
	return nil
}
