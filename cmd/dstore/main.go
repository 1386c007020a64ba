// Command dstore is a general purpose CLI interface to digest stores.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/bobg/subcmd"

	ds "github.com/gitpan/File-DigestStore"
	_ "github.com/gitpan/File-DigestStore/store/file"
	_ "github.com/gitpan/File-DigestStore/store/logging"
	_ "github.com/gitpan/File-DigestStore/store/lru"
	_ "github.com/gitpan/File-DigestStore/store/mem"
	_ "github.com/gitpan/File-DigestStore/store/pg"
	_ "github.com/gitpan/File-DigestStore/store/sqlite3"
)

type maincmd struct {
	s ds.Store
}

func main() {
	config := flag.String("config", "dsconf.json", "path to config file")
	flag.Parse()

	if *config == "" {
		log.Fatal("Config value not set")
	}

	ctx := context.Background()

	s, err := storeFromConfig(ctx, *config)
	if err != nil {
		log.Fatalf("Creating store: %s", err)
	}

	err = subcmd.Run(ctx, maincmd{s: s}, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
}

func (c maincmd) Subcmds() map[string]subcmd.Subcmd {
	return map[string]subcmd.Subcmd{
		"put":      c.put,
		"put-file": c.putFile,
		"get":      c.get,
		"path":     c.path,
		"exists":   c.exists,
		"list":     c.list,
	}
}
