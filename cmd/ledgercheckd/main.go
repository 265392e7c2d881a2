package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/crypto/acme/autocert"

	"github.com/go-cardano/ledgercheck/internal/audit"
	"github.com/go-cardano/ledgercheck/internal/logging"
	"github.com/go-cardano/ledgercheck/internal/phase2"
)

var tlsDomainFlag string

func main() {
	if _, err := maxprocs.Set(); err != nil {
		fmt.Printf("failed to set GOMAXPROCS: %v\n", err)
	}

	cli := makeCLI()
	if err := cli.Execute(); err != nil {
		fmt.Println(err)
	}
}

func makeCLI() *cobra.Command {
	cli := &cobra.Command{
		Use:   "ledgercheckd",
		Short: "Serve Cardano transaction validation over HTTP(S)",
		RunE:  serve,
	}

	cfg, err := newServiceConfig()
	if err != nil {
		panic(err)
	}

	cli.Flags().BoolVar(&cfg.HTTP, "http", cfg.HTTP, "host using HTTP instead of HTTPS (more suitable for localhost)")
	cli.Flags().StringVar(&tlsDomainFlag, "tls-domain", cfg.TLSDomain, "domain name to provision an ACME certificate for")

	return cli
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := newServiceConfig()
	if err != nil {
		return err
	}
	if tlsDomainFlag != "" {
		cfg.TLSDomain = tlsDomainFlag
	}

	log := logging.WithNetwork(logging.New(cfg.NetworkName), cfg.NetworkName)

	var store *audit.Store
	if cfg.AuditEnabled {
		dsn := cfg.AuditDSN
		if dsn == "" {
			dsn = audit.DefaultDSN(cfg.NetworkName)
		}
		store, err = audit.Open(cmd.Context(), dsn)
		if err != nil {
			return fmt.Errorf("opening audit store: %w", err)
		}
		defer store.Close()
	}

	h := newHandler(log, phase2.NewPlutigoRunner(), store)

	useHTTP, _ := cmd.Flags().GetBool("http")
	if useHTTP {
		return serveHTTP(h, log)
	}
	return serveHTTPS(h, log, cfg.TLSDomain)
}

func serveHTTP(h *handler, log *logrus.Entry) error {
	server := &http.Server{
		Addr:    ":80",
		Handler: h.routes(),
	}

	log.Info("HTTP server listening on port 80")
	if err := server.ListenAndServe(); err != nil {
		log.WithError(err).Error("HTTP server error")
	}
	return nil
}

func serveHTTPS(h *handler, log *logrus.Entry, domain string) error {
	certManager := &autocert.Manager{
		Prompt: autocert.AcceptTOS,
		Cache:  autocert.DirCache("certs"),
		HostPolicy: func(_ context.Context, host string) error {
			if !isAllowedHost(host, domain) {
				return fmt.Errorf("unauthorized host %q", host)
			}
			return nil
		},
	}

	go func() {
		httpServer := &http.Server{
			Addr:    ":80",
			Handler: certManager.HTTPHandler(nil),
		}

		log.Info("HTTP server (for ACME certificates) listening on port 80")
		if err := httpServer.ListenAndServe(); err != nil {
			log.WithError(err).Error("HTTP server error")
		}
	}()

	tlsConfig := &tls.Config{
		GetCertificate: certManager.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}

	httpsServer := &http.Server{
		Addr:      ":443",
		Handler:   h.routes(),
		TLSConfig: tlsConfig,
	}

	log.Info("HTTPS server listening on port 443")
	return httpsServer.ListenAndServeTLS("", "")
}

// isAllowedHost only allows domain names, and only the configured one when
// set, denying IPs and localhost.
func isAllowedHost(host, domain string) bool {
	hostname := strings.Split(host, ":")[0]

	if hostname == "localhost" || net.ParseIP(hostname) != nil {
		return false
	}

	if domain != "" && hostname != domain {
		return false
	}

	domainRegex := regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return domainRegex.MatchString(hostname)
}
