package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gitpress/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-o string   owner namespace of both repositories
//	-r string   content repository name
//	-b string   content branch
//	-d string   local snapshot database path
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-o", "-r", "-b", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Owner, "o", cfg.Owner, "owner namespace of the repositories")
	fs.StringVar(&cfg.ContentRepo, "r", cfg.ContentRepo, "content repository name")
	fs.StringVar(&cfg.Branch, "b", cfg.Branch, "content branch")
	fs.StringVar(&cfg.SnapshotPath, "d", cfg.SnapshotPath, "local snapshot database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
