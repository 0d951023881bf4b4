package main

import (
	"fmt"

	ii "github.com/cosdata-io/cosdata/invertedindex"
)

type viewNodeCmd struct {
	DimFile       string `arg:"" help:"path to the dim file"`
	DataDirectory string `arg:"" help:"directory holding the data-file partitions"`
	Offset        uint32 `arg:"" help:"node file offset"`
	DataFileParts uint8  `help:"data-file partition count" default:"4"`
}

func (cmd *viewNodeCmd) Run(_ *globalOptions) error {
	dimBufman, err := ii.NewBufferManager(cmd.DimFile)
	if err != nil {
		return err
	}
	defer dimBufman.Close()

	dataBufmans := ii.NewBufferManagerFactory[uint8](cmd.DataDirectory, "data_%d")
	defer dataBufmans.CloseAll()

	node, err := ii.DeserializeNode(dimBufman, dataBufmans, ii.FileOffset(cmd.Offset), cmd.DataFileParts)
	if err != nil {
		return err
	}

	fmt.Printf("dim_index:        %d\n", node.DimIndex)
	fmt.Printf("implicit:         %v\n", node.Implicit)
	fmt.Printf("quantization_bits: %d\n", node.QuantizationBits)
	fmt.Printf("file_offset:      %d\n", node.FileOffset)

	for _, e := range node.Data.Entries() {
		fmt.Printf("  quotient=%-6d pagepool_head=%d\n", e.Quotient, e.PageHead)
	}

	for i := 0; i < ii.FanOut; i++ {
		if offset, ok := node.Children.Get(i); ok {
			fmt.Printf("  child[%2d] -> %d\n", i, offset)
		}
	}
	return nil
}
