package main

import (
	"context"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/reoring/jtoken"
	"github.com/reoring/jtoken/jsontext"
)

// fmtCommand rebuilds each input document and prints it as JSON.
type fmtCommand struct {
	in     *inputFlags
	indent *int
}

func (cmd *fmtCommand) run(_ *kingpin.ParseContext) error {
	return cmd.in.each(context.Background(), func(_ string, _ int64, _ int, tok jtoken.Token) error {
		var w *jsontext.Writer
		if *cmd.indent > 0 {
			w = jsontext.NewIndentWriter(os.Stdout, *cmd.indent)
		} else {
			w = jsontext.NewWriter(os.Stdout)
		}
		if err := w.WriteToken(tok); err != nil {
			return err
		}
		_, err := os.Stdout.WriteString("\n")
		return err
	})
}

func addFmtCommand(app *kingpin.Application) {
	cmd := &fmtCommand{}
	c := app.Command("fmt", "Print each document as canonical JSON, one per line.").Action(cmd.run)
	cmd.indent = c.Flag("indent", "Indent nested values by this many spaces.").Default("0").Int()
	cmd.in = addInputFlags(c)
}
