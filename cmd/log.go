package cmd

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// newLogger returns a stdr logger writing to w. Per-topic progress lines are
// always printed; verbosity 1 adds the topic and file counts of each loaded
// roadmap.
func newLogger(w io.Writer, v int) logr.Logger {
	stdr.SetVerbosity(v)
	return stdr.New(log.New(w, "", log.LstdFlags))
}
