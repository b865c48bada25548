// Command btangle tangles annotated Markdown documents into source files.
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcorbin/btangle/internal/socutil"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}

var logs logState

func init() { logs.setOutput(os.Stderr) }

type logState struct {
	out   io.Writer
	flags int
}

func (st *logState) setFlags(flags int) *logState {
	log.SetFlags(flags)
	st.flags = flags
	return st
}

func (st *logState) setOutput(out io.Writer) *logState {
	log.SetOutput(out)
	st.out = out
	return st
}

func (st *logState) addPrefix(prefix string) *logState {
	return st.setOutput(socutil.PrefixWriter(prefix, st.out))
}

func newRootCmd() *cobra.Command {
	var strict bool

	root := &cobra.Command{
		Use:           "btangle",
		Short:         "Tangle annotated Markdown documents into source files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&strict, "strict", false,
		"treat malformed annotations as errors instead of plain text")

	root.AddCommand(newTangleCmd(&strict))
	root.AddCommand(newCheckCmd(&strict))
	root.AddCommand(newRenderCmd(&strict))
	root.AddCommand(newWatchCmd(&strict))
	return root
}
