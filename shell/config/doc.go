// Package config assembles database handles and server settings from the
// environment, with working local defaults so the service and its tests run
// without any setup beyond a Postgres instance.
package config
