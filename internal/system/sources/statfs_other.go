//go:build !linux

package sources

func unameVersion() string { return "unknown" }

func maxComponentLength(string) *int64 { return nil }
