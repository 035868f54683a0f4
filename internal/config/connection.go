package config

import (
	"errors"
	"time"

	"github.com/imamik/ranchsync/internal/platform/rancher"
)

// Environment variables read by LoadConnection.
const (
	EnvHost     = "RANCHER_HOST"
	EnvUser     = "RANCHER_USER"
	EnvPassword = "RANCHER_PASSWORD"
	EnvInsecure = "RANCHER_INSECURE"
	EnvCACert   = "RANCHER_CA_CERT"
	EnvTimeout  = "RANCHER_TIMEOUT"
)

// Connection holds the Rancher endpoint and credentials.
type Connection struct {
	Host       string
	User       string
	Password   string
	Insecure   bool
	CACertFile string
	Timeout    time.Duration
}

// LoadConnection reads the connection from environment variables.
// Unset or unparsable variables fall back to their defaults.
//
// Environment Variables:
//   - RANCHER_HOST
//   - RANCHER_USER
//   - RANCHER_PASSWORD
//   - RANCHER_INSECURE (default: false)
//   - RANCHER_CA_CERT
//   - RANCHER_TIMEOUT (default: 0, no client-side limit)
func LoadConnection() *Connection {
	return &Connection{
		Host:       parseString(EnvHost, ""),
		User:       parseString(EnvUser, ""),
		Password:   parseString(EnvPassword, ""),
		Insecure:   parseBool(EnvInsecure, false),
		CACertFile: parseString(EnvCACert, ""),
		Timeout:    parseDuration(EnvTimeout, 0),
	}
}

// Validate reports every missing required field.
func (c *Connection) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("rancher host is required (--host or "+EnvHost+")"))
	}
	if c.User == "" {
		errs = append(errs, errors.New("rancher user is required (--user or "+EnvUser+")"))
	}
	if c.Password == "" {
		errs = append(errs, errors.New("rancher password is required (--password or "+EnvPassword+")"))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Options converts the connection into client options.
func (c *Connection) Options() rancher.Options {
	return rancher.Options{
		Host:       c.Host,
		Username:   c.User,
		Password:   c.Password,
		Insecure:   c.Insecure,
		CACertFile: c.CACertFile,
		Timeout:    c.Timeout,
	}
}
