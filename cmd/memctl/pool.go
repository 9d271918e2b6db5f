package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
)

var (
	poolElem     string
	poolCount    int
	poolTracking string
	poolBacking  string
	poolOps      []string
)

func init() {
	cmd := newPoolCmd()
	cmd.Flags().StringVar(&poolElem, "elem", "8", "Cell size (e.g. 8, 64, 1KiB)")
	cmd.Flags().IntVar(&poolCount, "count", 8, "Number of cells")
	cmd.Flags().StringVar(&poolTracking, "tracking", "bitmap", "Slot tracking: bitmap or records")
	cmd.Flags().StringVar(&poolBacking, "backing", "auto", "Storage backing: auto, mapped or heap")
	cmd.Flags().StringSliceVar(&poolOps, "ops", nil,
		"Comma-separated ops: a (alloc), fN (free N-th handle), x (free last failure), r (reset)")
	rootCmd.AddCommand(cmd)
}

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Run a scripted sequence of pool operations",
		Long: `The pool command creates a fixed-size cell pool and runs the given
operations, printing the cell usage after each one ('#' used, '.' free).

Operations:
  a    allocate the lowest free cell
  fN   free the N-th successful allocation (0-based)
  x    free the handle returned by the last failed allocation
  r    reset the pool

Example:
  memctl pool --elem 8 --count 8 --ops a,a,f0,a,r
  memctl pool --count 2 --ops a,a,a,x --tracking records`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPool()
		},
	}
	return cmd
}

func runPool() error {
	elem, err := parseSize(poolElem)
	if err != nil {
		return err
	}
	tracking, err := alloc.ParseTracking(poolTracking)
	if err != nil {
		return err
	}
	backing, err := parseBacking(poolBacking)
	if err != nil {
		return err
	}

	p := alloc.NewPool(alloc.PoolOptions{
		Reporter: alloc.SlogReporter(L),
		Backing:  backing,
		Tracking: tracking,
	})
	if err := p.Create(elem, poolCount); err != nil {
		return fmt.Errorf("failed to create pool allocator: %w", err)
	}
	defer p.Destroy()

	printVerbose("Created %d cells of %s (%s tracking)\n", poolCount, formatSize(elem), tracking)
	if !jsonOut {
		printInfo("%-5s %s\n", "start", p.Usage())
	}

	var (
		handles []alloc.Allocation
		failed  = alloc.Allocation{Cell: p.MaxElements()}
	)
	for _, op := range poolOps {
		op = strings.TrimSpace(op)
		var opErr error
		switch {
		case op == "a":
			a, err := p.Alloc()
			if err != nil {
				failed = a
				opErr = err
				break
			}
			handles = append(handles, a)
		case op == "x":
			opErr = p.Free(failed)
		case op == "r":
			p.Reset()
		case strings.HasPrefix(op, "f"):
			n, err := strconv.Atoi(op[1:])
			if err != nil || n < 0 || n >= len(handles) {
				return fmt.Errorf("invalid free op %q: have %d handles", op, len(handles))
			}
			opErr = p.Free(handles[n])
		default:
			return fmt.Errorf("unknown op %q", op)
		}

		if jsonOut {
			continue
		}
		if opErr != nil {
			printInfo("%-5s %s failed: %v\n", op, p.Usage(), opErr)
			continue
		}
		printInfo("%-5s %s\n", op, p.Usage())
	}

	if jsonOut {
		return printJSON(p.Stats())
	}
	printInfo("%s\n", p.Stats())
	return nil
}
