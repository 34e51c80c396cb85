// Package report turns validation results into the stable, user-facing
// message list and renders it as JSON or as (optionally styled) text.
package report
