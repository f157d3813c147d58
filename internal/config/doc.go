// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (prefixed with DRIVE_)
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetClientConfig], which returns the client view
// with defaults applied together with the positional arguments.
package config
