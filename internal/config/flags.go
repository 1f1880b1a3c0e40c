package config

import (
	"flag"
	"os"
)

// parses CLI flags for the documents subcommand
func ParseDocumentsFlags() Flags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("documents", flag.ExitOnError)
	path := fs.String("path", "./documents", "path to a directory of documents to ingest")
	clearFlag := fs.Bool("clear", false, "clear existing indexes before ingesting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path, Clear: *clearFlag}
}
