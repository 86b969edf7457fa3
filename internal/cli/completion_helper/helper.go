package completion_helper

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
)

// FlagCompleter imprime todos los flags del comando actual en w para la finalización del shell.
func FlagCompleter(w io.Writer) func(context.Context, *cli.Command) {
	return func(_ context.Context, cmd *cli.Command) {
		for _, f := range cmd.Flags {
			for _, name := range f.Names() {
				if len(name) == 1 {
					fmt.Fprintln(w, "-"+name)
				} else {
					fmt.Fprintln(w, "--"+name)
				}
			}
		}
	}
}
