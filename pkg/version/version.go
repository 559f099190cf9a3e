// Package version provides version information for the ireina application.
package version

// Version is the current version of the ireina application.
const Version = "0.2.0"

// UserAgent returns the identifier sent with every upstream HTTP request.
func UserAgent() string {
	return "ireina/" + Version
}
