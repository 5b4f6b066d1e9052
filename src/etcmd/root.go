package etcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"github.com/gotvc/et/src/et"
	"github.com/gotvc/et/src/etstore"
	"github.com/gotvc/et/src/internal/etcfg"
)

// Main is the main function for the et CLI.
func Main() {
	logger := func() *zap.Logger {
		log, _ := zap.NewProduction()
		return log
	}()
	ctx := context.Background()
	ctx = logctx.NewContext(ctx, logger)
	star.Main(rootCmd,
		star.MainBackground(ctx),
		star.MainIncludeEnv(func(k string) bool {
			return strings.HasPrefix(k, "ET_")
		}),
	)
}

// Root returns the root command for the et CLI.
func Root() star.Command {
	return rootCmd
}

var rootCmd = star.NewDir(
	star.Metadata{
		Short: "et prints, converts and stores exact timestamps",
	}, map[string]star.Command{
		"now":    nowCmd,
		"encode": encodeCmd,
		"decode": decodeCmd,

		"stamp": stampCmd,
		"get":   getCmd,
		"list":  listCmd,
		"rm":    rmCmd,

		"config":  configCmd,
		"version": versionCmd,
	},
)

var formatParam = star.Optional[string]{
	ID:       "format",
	Parse:    star.ParseString,
	ShortDoc: "one of text, json, yaml, toml, hex, bin",
}

var fieldsParam = star.Optional[string]{
	ID:       "fields",
	Parse:    star.ParseString,
	ShortDoc: "how keyed field names are mapped when decoding: natural or swapped",
}

var nameParam = star.Required[string]{
	ID:       "name",
	Parse:    star.ParseString,
	ShortDoc: "the name of a stored timestamp",
}

var secParam = star.Required[int64]{
	ID: "sec",
	Parse: func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	},
	ShortDoc: "seconds since the Unix epoch",
}

var nsecParam = star.Required[int32]{
	ID: "nsec",
	Parse: func(s string) (int32, error) {
		x, err := strconv.ParseInt(s, 10, 32)
		return int32(x), err
	},
	ShortDoc: "nanoseconds",
}

var nowCmd = star.Command{
	Metadata: star.Metadata{Short: "prints the current time"},
	Flags: map[string]star.Flag{
		"format": formatParam,
	},
	F: func(c star.Context) error {
		f, err := loadFormat(c)
		if err != nil {
			return err
		}
		return Encode(c.StdOut, f, et.FromGoTime(time.Now()))
	},
}

var encodeCmd = star.Command{
	Metadata: star.Metadata{Short: "prints the timestamp for a seconds and nanoseconds pair"},
	Flags: map[string]star.Flag{
		"format": formatParam,
	},
	Pos: []star.Positional{secParam, nsecParam},
	F: func(c star.Context) error {
		f, err := loadFormat(c)
		if err != nil {
			return err
		}
		return Encode(c.StdOut, f, et.New(secParam.Load(c), nsecParam.Load(c)))
	},
}

var decodeCmd = star.Command{
	Metadata: star.Metadata{Short: "decodes a timestamp from stdin and prints its fields"},
	Flags: map[string]star.Flag{
		"format": formatParam,
		"fields": fieldsParam,
	},
	F: func(c star.Context) error {
		fstr, ok := formatParam.LoadOpt(c)
		if !ok {
			fstr = string(FormatJSON)
		}
		f, err := ParseFormat(fstr)
		if err != nil {
			return err
		}
		fieldsStr, _ := fieldsParam.LoadOpt(c)
		fields, err := ParseFields(fieldsStr)
		if err != nil {
			return err
		}
		x, err := Decode(c.StdIn, f, fields)
		if err != nil {
			return err
		}
		c.Printf("sec:     %d\n", x.Sec())
		c.Printf("nsec:    %d\n", x.Nsec())
		c.Printf("display: %v\n", x)
		return nil
	},
}

var configCmd = star.Command{
	Metadata: star.Metadata{Short: "prints the effective configuration"},
	F: func(c star.Context) error {
		cfg, err := etcfg.Load(getenv(c))
		if err != nil {
			return err
		}
		c.Printf("%s\n", etcfg.Marshal(cfg))
		return nil
	},
}

var versionCmd = star.Command{
	Metadata: star.Metadata{Short: "prints version information"},
	F: func(c star.Context) error {
		binfo, ok := debug.ReadBuildInfo()
		if !ok {
			return fmt.Errorf("no build info")
		}
		c.Printf("GO VERSION: %s\n", binfo.GoVersion)
		c.Printf("ET VERSION: %s\n", binfo.Main.Version)
		for _, bs := range binfo.Settings {
			switch bs.Key {
			case "vcs.revision", "vcs.time", "vcs.modified":
				c.Printf("%s: %s\n", bs.Key, bs.Value)
			}
		}
		return nil
	},
}

// loadFormat returns the --format flag, falling back to the configured format.
func loadFormat(c star.Context) (Format, error) {
	if s, ok := formatParam.LoadOpt(c); ok {
		return ParseFormat(s)
	}
	cfg, err := etcfg.Load(getenv(c))
	if err != nil {
		return "", err
	}
	return ParseFormat(cfg.Format)
}

func openStore(c star.Context) (*etstore.Store, error) {
	cfg, err := etcfg.Load(getenv(c))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, err
	}
	return etstore.Open(c.Context, cfg.DBPath)
}

// getenv looks up variables in the environment the command was run with.
func getenv(c star.Context) func(string) string {
	return func(k string) string {
		return c.Env[k]
	}
}
