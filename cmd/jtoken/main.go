// Command jtoken reads JSON and YAML documents into token trees and prints
// them back as canonical JSON or as structure statistics.
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/reoring/jtoken"
	_ "github.com/reoring/jtoken/source"
	yamlsrc "github.com/reoring/jtoken/source/yaml"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

// inputFlags are shared by every command that reads documents.
type inputFlags struct {
	files      *[]string
	format     *string
	parseDates *bool
	maxDepth   *int
	dupKeys    *string
	overwrite  *bool
}

func addInputFlags(cmd *kingpin.CmdClause) *inputFlags {
	return &inputFlags{
		files:      cmd.Arg("file", "Input files; stdin when none are given.").ExistingFiles(),
		format:     cmd.Flag("format", "Input format.").Default("auto").Enum("auto", "json", "yaml"),
		parseDates: cmd.Flag("parse-dates", "Read RFC 3339 strings as dates.").Bool(),
		maxDepth:   cmd.Flag("max-depth", "Maximum nesting depth; 0 is unlimited.").Default("0").Int(),
		dupKeys:    cmd.Flag("duplicate-keys", "How duplicate object keys are reported.").Default("error").Enum("ignore", "warn", "error"),
		overwrite:  cmd.Flag("overwrite-duplicates", "Keep the last value of a duplicate key instead of failing.").Bool(),
	}
}

func (f *inputFlags) readOpt() jtoken.ReadOpt {
	opt := jtoken.ReadOpt{
		ParseDates: *f.parseDates,
		MaxDepth:   *f.maxDepth,
		Logger:     logger,
	}
	switch *f.dupKeys {
	case "warn":
		opt.OnDuplicateKey = jtoken.Warn
	case "error":
		opt.OnDuplicateKey = jtoken.Error
	}
	if *f.overwrite {
		opt.Writer.OnDuplicateName = jtoken.DuplicateOverwrite
	}
	return opt
}

// each calls fn for every document of every input.
func (f *inputFlags) each(ctx context.Context, fn func(name string, size int64, i int, tok jtoken.Token) error) error {
	if len(*f.files) == 0 {
		return f.eachIn(ctx, "-", os.Stdin, -1, fn)
	}
	for _, name := range *f.files {
		if err := f.eachFile(ctx, name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (f *inputFlags) eachFile(ctx context.Context, name string, fn func(string, int64, int, jtoken.Token) error) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	fi, err := file.Stat()
	if err != nil {
		return err
	}
	return f.eachIn(ctx, name, file, fi.Size(), fn)
}

func (f *inputFlags) eachIn(ctx context.Context, name string, r io.Reader, size int64, fn func(string, int64, int, jtoken.Token) error) error {
	var src jtoken.Source
	if f.isYAML(name) {
		src = yamlsrc.NewReader(r)
	} else {
		src = jtoken.JSONReader(r)
	}
	level.Debug(logger).Log("msg", "reading", "file", name, "driver", jtoken.CurrentJSONDriver().Name())
	return jtoken.ReadEach(ctx, src, func(i int, tok jtoken.Token) error {
		return fn(name, size, i, tok)
	}, f.readOpt())
}

func (f *inputFlags) isYAML(name string) bool {
	switch *f.format {
	case "yaml":
		return true
	case "json":
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func exitWithErr(err error) {
	level.Error(logger).Log("err", err)
	os.Exit(1)
}

func allowLevel(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

func main() {
	app := kingpin.New("jtoken", "Read JSON and YAML documents into token trees.")
	logLevel := app.Flag("log.level", "Only log messages with the given severity or above.").Default("info").Enum("debug", "info", "warn", "error")
	app.PreAction(func(*kingpin.ParseContext) error {
		logger = level.NewFilter(logger, allowLevel(*logLevel))
		return nil
	})
	addFmtCommand(app)
	addStatsCommand(app)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}
