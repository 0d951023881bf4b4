// Command cosdata-cli is an offline inspection tool for a collection's
// on-disk inverted-index files, in the spirit of tempo-cli's per-block
// inspection subcommands.
package main

import (
	"github.com/alecthomas/kong"
)

type globalOptions struct {
	DataDir string `help:"root data directory" default:"./data"`
}

var cli struct {
	globalOptions

	ListCollections   listCollectionsCmd   `cmd:"" help:"list collections in the registry"`
	CreateCollection  createCollectionCmd  `cmd:"" help:"create a collection"`
	ViewNode          viewNodeCmd          `cmd:"" help:"dump one dim-file node record"`
	VerifyIndex       verifyIndexCmd       `cmd:"" help:"scan a dim file and verify header invariants"`
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("cosdata-cli"), kong.Description("inspect a cosdata collection's on-disk index files"))
	err := ctx.Run(&cli.globalOptions)
	ctx.FatalIfErrorf(err)
}
