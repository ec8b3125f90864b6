// Package paths resolves the host directories vacuum works against (the
// user's home and configuration directories) and the locations of vacuum's
// own files. Host lookups follow the XDG Base Directory specification via
// github.com/adrg/xdg.
package paths
