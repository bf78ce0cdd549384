// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the tool version reported by -version
const Version = "1.2-" + runtime.GOOS + "/" + runtime.GOARCH

