// Package version reports build information for the picoview binary.
//
//	go build -ldflags "-X github.com/kbukum/picoview/version.Version=1.2.0"
package version
