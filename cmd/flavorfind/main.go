package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"path/filepath"

	fmt "github.com/jhunt/go-ansi"
	"github.com/jhunt/go-cli"
	env "github.com/jhunt/go-envirotron"

	"github.com/harrylevesque/flavorfind/internal/app"
	"github.com/harrylevesque/flavorfind/internal/config"
	"github.com/harrylevesque/flavorfind/internal/dashboard"
	"github.com/harrylevesque/flavorfind/internal/files"
	"github.com/harrylevesque/flavorfind/internal/manifest"
	"github.com/harrylevesque/flavorfind/internal/probe"
	"github.com/harrylevesque/flavorfind/internal/ui"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

type options struct {
	Help        bool   `cli:"-h, --help"`
	Config      string `cli:"-c, --config" env:"FLAVORFIND_CONFIG"`
	Backend     string `cli:"-b, --backend"`
	AppID       string `cli:"-a, --app-id"`
	DataDir     string `cli:"-d, --data-dir"`
	Password    string `cli:"-p, --password" env:"FLAVORFIND_PASSWORD"`
	LogFile     string `cli:"-L, --log" env:"FLAVORFIND_LOG"`
	Address     string `cli:"--address"`
	Cuisine     string `cli:"--cuisine"`
	Description string `cli:"--description"`
}

const usage = `USAGE: flavorfind [options] [COMMAND]

Commands:
  shell                  interactive session (default)
  status                 check the backend connection and session
  login EMAIL            sign in
  signup NAME EMAIL      create an account and sign in
  logout                 sign out
  whoami                 show the signed-in user
  list                   list restaurants, newest first
  add NAME               add a restaurant (--address, --cuisine, --description)

Options:
  -c, --config FILE      JSON config file (default ~/.flavorfind/flavorfind.json)
  -b, --backend URL      backend base url
  -a, --app-id ID        backend application id
  -d, --data-dir DIR     where the session and log are kept
  -p, --password PW      password for login / signup
  -L, --log FILE         log file (default <data-dir>/flavorfind.log)
`

func bail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "@R{!!! %s}\n", err)
		os.Exit(1)
	}
}

// client bundles everything a command needs.
type client struct {
	opt   options
	cfg   config.Config
	log   *utils.Logger
	in    *bufio.Reader
	sdk   *manifest.Client
	app   *app.App
	view  *dashboard.View
	admin string
}

func main() {
	var opt options
	opt.Config = filepath.Join(utils.GetDataDir(), config.DefaultFile)
	env.Override(&opt)

	_, args, err := cli.Parse(&opt)
	bail(err)
	if opt.Help {
		fmt.Printf(usage)
		os.Exit(0)
	}

	cmd := "shell"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	c, err := setup(opt, cmd == "shell")
	bail(err)
	defer c.log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		// A second Ctrl-C kills the process outright.
		<-ctx.Done()
		stop()
	}()

	bail(c.run(ctx, cmd, args))
}

// defaultLogFile keeps the log out of the terminal the screens draw on.
func defaultLogFile(dataDir string) string {
	return filepath.Join(dataDir, "flavorfind.log")
}

func setup(opt options, interactive bool) (*client, error) {
	cfg, err := config.Load(opt.Config)
	if err != nil {
		return nil, err
	}
	if opt.Backend != "" {
		cfg.BackendURL = opt.Backend
	}
	if opt.AppID != "" {
		cfg.AppID = opt.AppID
	}
	if opt.DataDir != "" {
		cfg.DataDir = opt.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if opt.LogFile == "" {
		opt.LogFile = defaultLogFile(cfg.DataDir)
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, err
	}
	log, err := utils.OpenLogger(opt.LogFile)
	if err != nil {
		return nil, err
	}

	var key []byte
	if cfg.SessionEncryption {
		if key, err = files.SessionKey(cfg.DataDir, utils.DeviceFingerprint); err != nil {
			return nil, err
		}
	}
	tokens := files.NewTokenStore(cfg.DataDir, key)
	if !tokens.Encrypted() {
		log.Warn("flavorfind: session is stored unencrypted")
	}

	sdk, err := manifest.New(cfg.AppID, cfg.BackendURL, manifest.WithTokenStore(tokens), manifest.WithLogger(log))
	if err != nil {
		return nil, err
	}

	c := &client{
		opt:   opt,
		cfg:   cfg,
		log:   log,
		in:    bufio.NewReader(os.Stdin),
		sdk:   sdk,
		admin: cfg.AdminURL(),
	}

	var alerter *ui.Alerter
	if interactive {
		alerter = ui.NewAlerter(os.Stderr, c.in)
	} else {
		alerter = ui.NewAlerter(os.Stderr, nil)
	}

	prober := probe.New(cfg.BackendURL,
		probe.WithDelay(cfg.ProbeDelay()),
		probe.WithTimeout(cfg.ProbeTimeout()),
		probe.WithLogger(log))

	c.app = app.New(sdk.Users(),
		app.WithProbe(prober, cfg.ProbeAttempts),
		app.WithSDKCheck(func() error {
			_, err := manifest.New(cfg.AppID, cfg.BackendURL)
			return err
		}),
		app.WithAlerter(alerter),
		app.WithLogger(log))
	c.view = dashboard.New(c.app, sdk.Restaurants())
	return c, nil
}
