package main

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	fmt "github.com/jhunt/go-ansi"
	"github.com/jhunt/go-cli"

	"github.com/harrylevesque/flavorfind/internal/crypto"
	"github.com/harrylevesque/flavorfind/internal/files"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

func main() {
	var opt struct {
		Help  bool   `cli:"-h, --help"`
		Out   string `cli:"-o, --out"`
		Force bool   `cli:"-f, --force"`
	}
	opt.Out = utils.GetDataDir()

	_, args, err := cli.Parse(&opt)
	if err == nil && (opt.Help || len(args) != 0) {
		fmt.Printf("USAGE: genmasterkey [--out DIR] [--force]\n")
		os.Exit(1)
	}
	if err == nil {
		err = write(opt.Out, opt.Force)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "@R{!!! %s}\n", err)
		os.Exit(1)
	}
}

func write(dir string, force bool) error {
	keyFile := filepath.Join(dir, files.MasterKeyFile)
	if _, err := os.Stat(keyFile); err == nil && !force {
		return errors.New(keyFile + " already exists; use --force to replace it (stored sessions will be lost)")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	key := crypto.MustRandom(crypto.KeySize)
	if err := os.WriteFile(keyFile, []byte(hex.EncodeToString(key)+"\n"), 0600); err != nil {
		return err
	}
	fmt.Printf("Master key written to @G{%s}\n", keyFile)
	return nil
}
