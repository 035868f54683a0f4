package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConnectionEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{EnvHost, EnvUser, EnvPassword, EnvInsecure, EnvCACert, EnvTimeout} {
		t.Setenv(env, "")
	}
}

func TestLoadConnection_Defaults(t *testing.T) {
	clearConnectionEnv(t)

	conn := LoadConnection()
	assert.Empty(t, conn.Host)
	assert.False(t, conn.Insecure)
	assert.Zero(t, conn.Timeout)
}

func TestLoadConnection_FromEnv(t *testing.T) {
	clearConnectionEnv(t)
	t.Setenv(EnvHost, " rancher.example.com ")
	t.Setenv(EnvUser, "admin")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvInsecure, "true")
	t.Setenv(EnvCACert, "/etc/ssl/rancher.pem")
	t.Setenv(EnvTimeout, "45s")

	conn := LoadConnection()
	assert.Equal(t, "rancher.example.com", conn.Host)
	assert.Equal(t, "admin", conn.User)
	assert.Equal(t, "secret", conn.Password)
	assert.True(t, conn.Insecure)
	assert.Equal(t, "/etc/ssl/rancher.pem", conn.CACertFile)
	assert.Equal(t, 45*time.Second, conn.Timeout)

	opts := conn.Options()
	assert.Equal(t, "rancher.example.com", opts.Host)
	assert.Equal(t, "admin", opts.Username)
	assert.True(t, opts.Insecure)
	assert.Equal(t, 45*time.Second, opts.Timeout)
}

func TestLoadConnection_InvalidValuesFallBack(t *testing.T) {
	clearConnectionEnv(t)
	t.Setenv(EnvInsecure, "maybe")
	t.Setenv(EnvTimeout, "soon")

	conn := LoadConnection()
	assert.False(t, conn.Insecure)
	assert.Zero(t, conn.Timeout)
}

func TestConnection_Validate(t *testing.T) {
	err := (&Connection{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host is required")
	assert.Contains(t, err.Error(), "user is required")
	assert.Contains(t, err.Error(), "password is required")

	err = (&Connection{Host: "h", User: "u", Password: "p", Timeout: -time.Second}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")

	assert.NoError(t, (&Connection{Host: "h", User: "u", Password: "p"}).Validate())
}
