// Package db ships the SQL schema with the binary so deploy tooling and the
// integration test harness apply the same DDL.
package db

import _ "embed"

//go:embed schema.sql
var Schema string
