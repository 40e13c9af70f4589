// Package config provides database connection configuration for the example
// application and its tests, one constructor per supported access layer.
package config
