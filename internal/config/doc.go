// Package config describes the sinks of a logvisor registry in a YAML file
// and applies such a description to a registry.
package config
