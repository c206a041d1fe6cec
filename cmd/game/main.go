package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/centerfire/internal/config"
	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/client"
	gameconfig "github.com/tomz197/centerfire/internal/loop/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	settings, err := gameconfig.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game while it runs; logs are printed after.
	var logBuf bytes.Buffer
	logger := log.NewWithOptions(&logBuf, log.Options{ReportTimestamp: true})

	if err := run(settings, logger); err != nil {
		os.Stderr.Write(logBuf.Bytes())
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	os.Stderr.Write(logBuf.Bytes())
}

func run(settings gameconfig.Settings, logger *log.Logger) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(reader, os.Stdout, client.ClientOptions{
		Settings: &settings,
		Reporter: loop.NewLogReporter(logger),
	})
	return c.Run()
}
