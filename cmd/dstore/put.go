package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	ds "github.com/gitpan/File-DigestStore"
)

func (c maincmd) put(ctx context.Context, fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return errors.Wrap(err, "reading stdin")
	}

	id, n, err := c.s.Put(ctx, ds.Bytes(data))
	if err != nil {
		return errors.Wrap(err, "storing blob")
	}

	log.Printf("stored %d bytes", n)
	fmt.Println(id)
	return nil
}

func (c maincmd) putFile(ctx context.Context, fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	args = fs.Args()
	if len(args) == 0 {
		return errors.New("missing filename")
	}

	id, n, err := ds.PutFile(ctx, c.s, args[0])
	if err != nil {
		return errors.Wrapf(err, "storing %s", args[0])
	}

	log.Printf("stored %d bytes", n)
	fmt.Println(id)
	return nil
}
