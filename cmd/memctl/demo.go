package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
)

type exampleStruct struct {
	Count uint32
	Float float32
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Walk through both allocators",
		Long: `The demo command allocates a few typed values from a 1 KiB bump allocator,
then allocates, frees, resets and fills an 8-cell pool of float64s,
printing the pool usage along the way.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runBumpDemo(); err != nil {
				return err
			}
			return runPoolDemo()
		},
	})
}

func runBumpDemo() error {
	printInfo("Bump Allocator Example:\n")

	b := alloc.NewBump(alloc.BumpOptions{Reporter: alloc.SlogReporter(L)})
	if err := b.Create(alloc.KB(1)); err != nil {
		return err
	}
	defer b.Destroy()

	mem1, err := alloc.New[int32](b)
	if err != nil {
		return err
	}
	*mem1 = 7

	mem2, err := alloc.New[float32](b)
	if err != nil {
		return err
	}
	*mem2 = 3.14

	mem3, err := alloc.New[exampleStruct](b)
	if err != nil {
		return err
	}
	*mem3 = exampleStruct{Count: 7, Float: 1.0}

	printInfo("mem1 = %d\n", *mem1)
	printInfo("mem2 = %f\n", *mem2)
	printInfo("mem3.Count = %d\n", mem3.Count)
	printInfo("mem3.Float = %f\n", mem3.Float)
	printInfo("%d bytes left.\n", b.RemainingBytes())

	b.Reset()
	printInfo("\n")
	return nil
}

func runPoolDemo() error {
	printInfo("Pool Allocator Example:\n")

	p := alloc.NewPool(alloc.PoolOptions{Reporter: alloc.SlogReporter(L)})
	if err := p.Create(8, 8); err != nil {
		return err
	}
	defer p.Destroy()

	usage := func() {
		if !quiet {
			_ = p.PrintUsage(os.Stdout)
		}
	}
	usage()

	mem1, err := p.Alloc()
	if err != nil {
		return err
	}
	putFloat(mem1, 7.0)
	printInfo("mem1 = %f\n", getFloat(mem1))
	usage()

	if err := p.Free(mem1); err != nil {
		return err
	}
	printInfo("mem1 freed!\n")
	usage()

	for i, v := range []float64{8.0, 9.0} {
		a, err := p.Alloc()
		if err != nil {
			return err
		}
		putFloat(a, v)
		printInfo("mem%d = %f\n", i+2, getFloat(a))
	}
	usage()

	p.Reset()
	printInfo("all memory freed!\n")
	usage()

	for range p.MaxElements() {
		if _, err := p.Alloc(); err != nil {
			return fmt.Errorf("fill pool: %w", err)
		}
	}
	printInfo("memory filled!\n")
	usage()

	p.Reset()
	printInfo("\n")
	return nil
}

func putFloat(a alloc.Allocation, v float64) {
	binary.NativeEndian.PutUint64(a.Mem, math.Float64bits(v))
}

func getFloat(a alloc.Allocation) float64 {
	return math.Float64frombits(binary.NativeEndian.Uint64(a.Mem))
}
