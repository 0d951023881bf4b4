package main

import (
	"fmt"

	ii "github.com/cosdata-io/cosdata/invertedindex"
)

// verifyIndexCmd scans a dim file for headers left inconsistent by a crash:
// it reads every NodeSize-aligned record from offset 0 and reports those
// that fail to deserialize or whose dim_index is outside [0, maxDim).
// Child offsets are not followed, so children are not checked against the
// trie partitioning.
type verifyIndexCmd struct {
	DimFile       string `arg:"" help:"path to the dim file"`
	DataDirectory string `arg:"" help:"directory holding the data-file partitions"`
	MaxDim        uint32 `arg:"" help:"exclusive upper bound on dim_index"`
	DataFileParts uint8  `help:"data-file partition count" default:"4"`
}

func (cmd *verifyIndexCmd) Run(_ *globalOptions) error {
	dimBufman, err := ii.NewBufferManager(cmd.DimFile)
	if err != nil {
		return err
	}
	defer dimBufman.Close()

	dataBufmans := ii.NewBufferManagerFactory[uint8](cmd.DataDirectory, "data_%d")
	defer dataBufmans.CloseAll()

	total := dimBufman.FileSize() / ii.NodeSize
	bad := 0
	for i := uint64(0); i < total; i++ {
		offset := ii.FileOffset(i * ii.NodeSize)
		node, err := ii.DeserializeNode(dimBufman, dataBufmans, offset, cmd.DataFileParts)
		if err != nil {
			fmt.Printf("node at %d: %v\n", offset, err)
			bad++
			continue
		}
		if node.DimIndex >= cmd.MaxDim {
			fmt.Printf("node at %d: dim_index %d out of [0,%d)\n", offset, node.DimIndex, cmd.MaxDim)
			bad++
		}
	}

	fmt.Printf("scanned %d nodes, %d bad\n", total, bad)
	return nil
}
