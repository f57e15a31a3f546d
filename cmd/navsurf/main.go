package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidyasagar/navsurf/internal/app"
	"github.com/vidyasagar/navsurf/internal/logging"
	"github.com/vidyasagar/navsurf/internal/storage"
	"github.com/vidyasagar/navsurf/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		mode        string
		basename    string
		hashType    string
		themeName   string
		logLevel    string
		logFile     string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "config file (default: the user config dir)")
	flag.StringVar(&mode, "mode", "", "history kind: browser, hash or memory")
	flag.StringVar(&basename, "basename", "", "base path every location lives under")
	flag.StringVar(&hashType, "hash-type", "", "fragment coding for hash mode: hashbang, noslash or slash")
	flag.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flag.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	flag.StringVar(&logFile, "log-file", "", "log file (default: navsurf.log in the state dir)")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "navsurf - explore session history in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: navsurf [flags] [path]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  navsurf                              # browser history at /\n")
		fmt.Fprintf(os.Stderr, "  navsurf /docs/intro                  # start on a page\n")
		fmt.Fprintf(os.Stderr, "  navsurf -mode hash -hash-type hashbang\n")
		fmt.Fprintf(os.Stderr, "  navsurf -basename /app /app/about    # paths under a base\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment variables NAVSURF_MODE, NAVSURF_BASENAME, NAVSURF_HASH_TYPE,\n")
		fmt.Fprintf(os.Stderr, "NAVSURF_KEY_LENGTH, NAVSURF_THEME, NAVSURF_LOG_LEVEL and NAVSURF_LOG_FILE\n")
		fmt.Fprintf(os.Stderr, "override the config file; flags override both.\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("navsurf %s\n", version)
		return nil
	}

	var cfg *storage.Config
	var err error
	if configPath != "" {
		cfg, err = storage.LoadConfigFile(configPath, nil)
	} else {
		cfg, err = storage.LoadConfig()
	}
	if err != nil {
		return err
	}

	// Flags win over the file and the environment, but only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = mode
		case "basename":
			cfg.Basename = basename
		case "hash-type":
			cfg.HashType = hashType
		case "theme":
			cfg.Theme = themeName
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-file":
			cfg.LogFile = logFile
		}
	})
	if flag.NArg() > 0 {
		cfg.Homepage = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.LogFile == "" {
		dir, err := storage.StateDir()
		if err != nil {
			return err
		}
		cfg.LogFile = filepath.Join(dir, "navsurf.log")
	}
	logger, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	ctx := context.Background()
	db, err := storage.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := app.New(app.Options{
		Config:  cfg,
		Logger:  logger,
		Journal: storage.NewJournal(db),
	})
	if err != nil {
		return err
	}
	defer m.Close()

	logger.Info("starting", "mode", cfg.Mode, "basename", cfg.Basename, "homepage", cfg.Homepage)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
