// Package paths provides centralized path handling for tuckfix.
// It resolves the XDG config and state directories, the user's home
// directory, and the boundary at which project-folder inference stops.
package paths
