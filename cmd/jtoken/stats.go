package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/reoring/jtoken"
)

// statsCommand prints the shape of each input document.
type statsCommand struct {
	in *inputFlags
}

type docStats struct {
	kinds    map[jtoken.Kind]uint64
	maxDepth int
	props    uint64
	strBytes uint64
}

func (s *docStats) walk(tok jtoken.Token, depth int) {
	s.kinds[tok.Kind()]++
	switch t := tok.(type) {
	case *jtoken.Object:
		depth++
		s.props += uint64(t.Len())
		for _, child := range t.All() {
			s.walk(child, depth)
		}
	case *jtoken.Array:
		depth++
		for _, child := range t.All() {
			s.walk(child, depth)
		}
	case *jtoken.Value:
		if str, ok := t.AsString(); ok {
			s.strBytes += uint64(len(str))
		}
	}
	s.maxDepth = max(s.maxDepth, depth)
}

func (cmd *statsCommand) run(_ *kingpin.ParseContext) error {
	bold := color.New(color.Bold)
	return cmd.in.each(context.Background(), func(name string, size int64, i int, tok jtoken.Token) error {
		s := &docStats{kinds: map[jtoken.Kind]uint64{}}
		s.walk(tok, 0)

		bold.Printf("%s #%d:\n", name, i)
		if size >= 0 {
			fmt.Printf("\tfile size: %v\n", humanize.Bytes(uint64(size)))
		}
		fmt.Printf("\troot: %v, depth: %d, properties: %s, string data: %v\n",
			tok.Kind(), s.maxDepth, humanize.Comma(int64(s.props)), humanize.Bytes(s.strBytes))
		for k := jtoken.KindNull; k <= jtoken.KindBytes; k++ {
			if n := s.kinds[k]; n > 0 {
				fmt.Printf("\t\t%-9s %s\n", k, humanize.Comma(int64(n)))
			}
		}
		return nil
	})
}

func addStatsCommand(app *kingpin.Application) {
	cmd := &statsCommand{}
	c := app.Command("stats", "Print kind counts and nesting depth of each document.").Action(cmd.run)
	cmd.in = addInputFlags(c)
}
