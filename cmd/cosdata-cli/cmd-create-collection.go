package main

import (
	"fmt"
	"path/filepath"

	"github.com/cosdata-io/cosdata/collection"
)

type createCollectionCmd struct {
	Name      string `arg:"" help:"collection name"`
	Dense     bool   `help:"enable the dense-vector index"`
	Dimension int    `help:"dense-vector dimension" default:"0"`
	Sparse    bool   `help:"enable the sparse-vector index"`
	TFIDF     bool   `help:"enable the TF-IDF index"`
}

func (cmd *createCollectionCmd) Run(opts *globalOptions) error {
	reg, err := collection.OpenRegistry(filepath.Join(opts.DataDir, "registry.db"))
	if err != nil {
		return err
	}
	defer reg.Close()

	c, err := collection.New(
		opts.DataDir,
		cmd.Name,
		nil,
		collection.DenseVectorOptions{Enabled: cmd.Dense, Dimension: cmd.Dimension},
		collection.SparseVectorOptions{Enabled: cmd.Sparse},
		collection.TFIDFOptions{Enabled: cmd.TFIDF},
		nil,
		collection.Config{},
	)
	if err != nil {
		return err
	}

	if err := reg.Persist(c); err != nil {
		return err
	}

	fmt.Printf("created collection %q, key=%x\n", c.Name, c.Key())
	return nil
}
