package main

import (
	_ "embed"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/centerfire/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "web"})

	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("Failed to load .env", "err", err)
	}
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "2222")

	http.Handle("/", newPageHandler(htmlPage, sshHost, sshPort))

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}

// newPageHandler serves page with the SSH connection details filled in.
func newPageHandler(page, sshHost, sshPort string) http.Handler {
	page = strings.NewReplacer(
		"{{.SSHHost}}", html.EscapeString(sshHost),
		"{{.SSHPort}}", html.EscapeString(sshPort),
	).Replace(page)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
}
