// Package config manages user-level settings stored at
// ~/.frontgen/config.yaml. It provides functions to load, read, and
// write configuration keys such as the default package manager and the
// node setup script URL used by dependency installation.
package config
