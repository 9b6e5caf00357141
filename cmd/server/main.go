package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	fmt "github.com/jhunt/go-ansi"
	"github.com/jhunt/go-cli"
	env "github.com/jhunt/go-envirotron"

	"github.com/harrylevesque/flavorfind/internal/api"
	"github.com/harrylevesque/flavorfind/internal/auth"
	"github.com/harrylevesque/flavorfind/internal/certs"
	"github.com/harrylevesque/flavorfind/internal/config"
	"github.com/harrylevesque/flavorfind/internal/crypto"
	"github.com/harrylevesque/flavorfind/internal/store"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

// certWarnWindow is how close to expiry a certificate gets logged.
const certWarnWindow = 14 * 24 * time.Hour

func bail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "@R{!!! %s}\n", err)
		os.Exit(1)
	}
}

func main() {
	var opt struct {
		Help     bool   `cli:"-h, --help"`
		Listen   string `cli:"-l, --listen" env:"FLAVORFIND_LISTEN"`
		Driver   string `cli:"--db-driver" env:"FLAVORFIND_DB_DRIVER"`
		DB       string `cli:"-d, --db, --database" env:"FLAVORFIND_DB"`
		AppID    string `cli:"-a, --app-id" env:"FLAVORFIND_APP_ID"`
		Secret   string `cli:"-s, --secret" env:"FLAVORFIND_TOKEN_SECRET"`
		TokenTTL string `cli:"--token-ttl"`
		TLSCert  string `cli:"--tls-cert"`
		TLSKey   string `cli:"--tls-key"`
	}

	opt.Listen = ":3000"
	opt.Driver = "sqlite"
	opt.DB = "flavorfind.db"
	opt.AppID = config.DefaultAppID
	opt.TokenTTL = "24h"
	env.Override(&opt)

	_, args, err := cli.Parse(&opt)
	bail(err)
	if opt.Help || len(args) != 0 {
		fmt.Printf("USAGE: flavorfind-server [-l BIND] [--db-driver sqlite|postgres] [-d DSN] [-a APP-ID] [-s SECRET] [--token-ttl 24h] [--tls-cert FILE --tls-key FILE]\n")
		os.Exit(1)
	}

	log := utils.NewLogger(os.Stderr)

	ttl, err := time.ParseDuration(opt.TokenTTL)
	bail(err)
	secret := []byte(opt.Secret)
	if len(secret) == 0 {
		log.Warn("server: no --secret given, using a random one; sessions end on restart")
		secret = crypto.MustRandom(crypto.KeySize)
	}
	tokens, err := auth.NewTokens(secret, ttl)
	bail(err)

	st, err := store.Open(opt.Driver, opt.DB)
	bail(err)
	defer st.Close()

	srv := &http.Server{
		Addr:              opt.Listen,
		Handler:           api.NewRouter(&api.Server{Store: st, Tokens: tokens, AppID: opt.AppID, Log: log}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if opt.TLSCert != "" || opt.TLSKey != "" {
		cm := certs.NewCertManager(opt.TLSCert, opt.TLSKey)
		srv.TLSConfig, err = cm.TLSConfig()
		bail(err)
		if leaf, err := cm.LoadCertificate(); err == nil && cm.ExpiresWithin(leaf, certWarnWindow) {
			log.Warnf("server: %s expires on %s", opt.TLSCert, leaf.NotAfter.Format(time.RFC3339))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	go pruneRevoked(ctx, st, log)

	fmt.Printf("@C{listening on %s...}\n", opt.Listen)
	if srv.TLSConfig != nil {
		err = srv.ListenAndServeTLS("", "")
	} else {
		err = srv.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		bail(err)
	}
	fmt.Printf("terminating...\n")
}

func pruneRevoked(ctx context.Context, st *store.Store, log *utils.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n, err := st.PruneRevoked(now); err != nil {
				log.Warnf("server: pruning revoked tokens: %v", err)
			} else if n > 0 {
				log.Infof("server: pruned %d revoked tokens", n)
			}
		}
	}
}
