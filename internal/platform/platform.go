// Package platform identifies the operating system family a menu is rendered for.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is an operating system family with its own menu conventions.
type Platform string

const (
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
	Linux   Platform = "linux"
)

// All lists the supported platforms in a stable order.
var All = []Platform{Darwin, Windows, Linux}

// Current returns the platform of the running process.
// Every non-darwin, non-windows GOOS renders like Linux.
func Current() Platform {
	switch runtime.GOOS {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	default:
		return Linux
	}
}

// Parse converts a user supplied name into a Platform.
// An empty string resolves to Current().
func Parse(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Current(), nil
	case "darwin", "mac", "macos":
		return Darwin, nil
	case "windows", "win32", "win":
		return Windows, nil
	case "linux":
		return Linux, nil
	default:
		return "", fmt.Errorf("unknown platform %q (must be \"darwin\", \"windows\" or \"linux\")", s)
	}
}

// IsMac reports whether p uses macOS menu conventions.
func (p Platform) IsMac() bool { return p == Darwin }

func (p Platform) String() string { return string(p) }

// Host supplies the facts about the embedding application that menus depend on.
// Implementations are queried on every lookup, so a host may change its answers
// over time (for example when a test switches platform).
type Host interface {
	Platform() Platform
	AppName() string
}

// Static is a Host with fixed answers.
type Static struct {
	OS   Platform
	Name string
}

// Platform returns the configured platform, defaulting to Current().
func (s Static) Platform() Platform {
	if s.OS == "" {
		return Current()
	}
	return s.OS
}

// AppName returns the configured application name.
func (s Static) AppName() string { return s.Name }
