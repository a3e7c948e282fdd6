package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/checkers/config"
	"github.com/domino14/checkers/shell"
)

var GitVersion string

//go:embed checkers.txt
var banner string

// newLogger writes human-readable logs to stderr, where they don't mix
// with the board on stdout.
func newLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("[%-5s]", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func startProfile(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := newLogger(cfg.GetBool(config.ConfigDebug))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	log.Debug().Msg("Debug logging is on")

	fmt.Println(banner)
	if GitVersion != "" {
		fmt.Println(GitVersion)
	}

	ex, err := os.Executable()
	if err != nil {
		log.Fatal().Err(err).Msg("could not find executable")
	}
	exPath := filepath.Dir(ex)

	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		stop, err := startProfile(p)
		if err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer stop()
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got quit signal...")
		close(done)
	}()

	sc := shell.NewShellController(cfg, exPath)
	defer sc.Cleanup()

	// flags are consumed by the config; anything left over is one command
	if cmdline := strings.TrimSpace(strings.Join(cfg.Args(), " ")); cmdline != "" {
		sc.Execute(sig, cmdline)
		return
	}
	go sc.Loop(sig)
	<-done
	log.Info().Msg("shutting down")
}
