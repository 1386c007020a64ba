package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	ds "github.com/gitpan/File-DigestStore"
)

func (c maincmd) get(ctx context.Context, fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	args = fs.Args()
	if len(args) == 0 {
		return errors.New("missing id")
	}

	data, err := c.s.Get(ctx, args[0])
	if err != nil {
		return errors.Wrapf(err, "getting blob %s", args[0])
	}
	_, err = os.Stdout.Write(data)
	return errors.Wrap(err, "writing blob to stdout")
}

func (c maincmd) path(ctx context.Context, fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	args = fs.Args()
	if len(args) == 0 {
		return errors.New("missing id")
	}

	ps, ok := c.s.(ds.PathStore)
	if !ok {
		return errors.Errorf("%T does not store objects at filesystem paths", c.s)
	}

	path, err := ps.Path(args[0])
	if err != nil {
		return errors.Wrapf(err, "resolving path of %s", args[0])
	}
	fmt.Println(path)
	return nil
}

func (c maincmd) exists(ctx context.Context, fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	args = fs.Args()
	if len(args) == 0 {
		return errors.New("missing id")
	}

	ok, err := c.s.Has(ctx, args[0])
	if err != nil {
		return errors.Wrapf(err, "checking %s", args[0])
	}
	fmt.Println(ok)
	return nil
}
