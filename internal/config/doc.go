// Package config loads mztabm settings from defaults, an optional
// mztabm.yaml, .env files and MZTABM_* environment variables, in
// increasing precedence. Command line flags are applied on top by the CLI.
package config
