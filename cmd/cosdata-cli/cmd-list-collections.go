package main

import (
	"fmt"
	"path/filepath"

	"github.com/cosdata-io/cosdata/collection"
)

type listCollectionsCmd struct{}

func (cmd *listCollectionsCmd) Run(opts *globalOptions) error {
	reg, err := collection.OpenRegistry(filepath.Join(opts.DataDir, "registry.db"))
	if err != nil {
		return err
	}
	defer reg.Close()

	collections, err := reg.List()
	if err != nil {
		return err
	}

	for _, c := range collections {
		key := c.Key()
		fmt.Printf("%-32s dense=%-5v sparse=%-5v tf_idf=%-5v key=%x\n",
			c.Name, c.DenseVector.Enabled, c.SparseVector.Enabled, c.TFIDFOptions.Enabled, key)
	}
	return nil
}
