package etcmd

import (
	"bufio"
	"fmt"
	"time"

	"github.com/fatih/color"
	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"

	"github.com/gotvc/et/src/et"
)

var stampCmd = star.Command{
	Metadata: star.Metadata{Short: "stores the current time under a name"},
	Pos:      []star.Positional{nameParam},
	F: func(c star.Context) error {
		ctx := c.Context
		s, err := openStore(c)
		if err != nil {
			return err
		}
		defer s.Close()
		name := nameParam.Load(c)
		now := et.FromGoTime(time.Now())
		if err := s.Put(ctx, name, now); err != nil {
			return err
		}
		logctx.Infof(ctx, "stored %s", name)
		c.Printf("%s %v\n", name, now)
		return nil
	},
}

var getCmd = star.Command{
	Metadata: star.Metadata{Short: "prints a stored timestamp"},
	Flags: map[string]star.Flag{
		"format": formatParam,
	},
	Pos: []star.Positional{nameParam},
	F: func(c star.Context) error {
		ctx := c.Context
		f, err := loadFormat(c)
		if err != nil {
			return err
		}
		s, err := openStore(c)
		if err != nil {
			return err
		}
		defer s.Close()
		x, err := s.Get(ctx, nameParam.Load(c))
		if err != nil {
			return err
		}
		return Encode(c.StdOut, f, x)
	},
}

var listCmd = star.Command{
	Metadata: star.Metadata{Short: "lists the stored timestamps"},
	F: func(c star.Context) error {
		ctx := c.Context
		s, err := openStore(c)
		if err != nil {
			return err
		}
		defer s.Close()
		ents, err := s.List(ctx)
		if err != nil {
			return err
		}
		bufw := bufio.NewWriter(c.StdOut)
		for _, ent := range ents {
			fmt.Fprintf(bufw, "%s\t%v\t%d.%09d\n", color.CyanString(ent.Name), ent.At, ent.At.Sec(), ent.At.Nsec())
		}
		return bufw.Flush()
	},
}

var rmCmd = star.Command{
	Metadata: star.Metadata{Short: "deletes a stored timestamp"},
	Pos:      []star.Positional{nameParam},
	F: func(c star.Context) error {
		ctx := c.Context
		s, err := openStore(c)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Delete(ctx, nameParam.Load(c))
	},
}
