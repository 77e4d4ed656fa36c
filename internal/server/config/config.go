// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the signage server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP API.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use
//     test defaults in prod.
//   - SessionValidityDuration: lifetime of an admin session token.
//   - AuthSalt: fixed salt for the credential digest. Changing it invalidates
//     the existing marker object.
//   - AuthRemoteCheck: when true, the "has a credential been configured"
//     signal performs a real existence check against the remote store; when
//     false it always reports "not configured", reproducing the behavior of
//     the original system (every fresh session starts in setup mode).
//   - StoreTimeout: upper bound on any single remote object store call.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3PublicBaseURL: object storage
//     settings.
type Config struct {
	EndpointAddrHTTP        string
	SecretKey               string
	SessionValidityDuration time.Duration
	AuthSalt                string
	AuthRemoteCheck         bool
	StoreTimeout            time.Duration
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	S3PublicBaseURL         string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 12 * time.Hour
	c.AuthSalt = "signage-salt-key-2024"
	c.AuthRemoteCheck = true
	c.StoreTimeout = 10 * time.Second
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "signage"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3PublicBaseURL = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
