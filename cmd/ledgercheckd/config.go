package main

import (
	"log"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	networkFile = "/etc/ledgercheckd/network"
)

// serviceConfig holds the settings the hosted service needs beyond what
// Validate itself takes: which network it is labelled as (for logging and
// audit records only — it never changes validation semantics), whether to
// serve HTTP or ACME-provisioned HTTPS, and where to persist verdicts.
// NetworkName is read from a file so it can be baked into an image or volume
// once per deployment; everything else is an environment-variable override
// in the LEDGERCHECKD_ prefix, since those are operational knobs rather than
// network identity.
type serviceConfig struct {
	NetworkName string `ignored:"true"`

	HTTP         bool   `envconfig:"http" default:"false"`
	TLSDomain    string `envconfig:"tls_domain"`
	AuditEnabled bool   `envconfig:"audit_enabled" default:"false"`
	AuditDSN     string `envconfig:"audit_dsn"`
}

// newServiceConfig reads the network name from disk, then layers
// environment overrides on top via envconfig.
func newServiceConfig() (*serviceConfig, error) {
	cfg := &serviceConfig{NetworkName: readNetworkName()}
	if err := envconfig.Process("ledgercheckd", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readNetworkName() string {
	data, err := os.ReadFile(networkFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "preprod"
		}
		log.Fatalf("error reading file %s: %v", networkFile, err)
	}

	name := strings.TrimSpace(string(data))
	if name != "preprod" && name != "mainnet" {
		log.Fatalf("expected preprod or mainnet in %s, got %v", networkFile, name)
	}
	return name
}
