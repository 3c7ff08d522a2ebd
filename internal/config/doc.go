// Package config provides configuration loading for the EMO reporting tool.
//
// Configuration is assembled from three layers, later layers winning:
// built-in defaults, an optional config.yaml next to the executable, and
// EMO_-prefixed environment variables. Paths are always resolved relative
// to the executable directory so the tool behaves identically whether it
// is run from a checkout or an installed location.
package config
