// Package testutil provides utilities for testing tuckfix components.
//
// Key components:
//   - TestEnvironment: a fake home directory on a real filesystem rooted in
//     t.TempDir(), addressed with absolute paths such as /home/u/.config/nvim
//   - FakeTool: a tuckr stand-in that derives conflicts from the filesystem
//   - MockTool / MockRelocator: testify mocks for interaction tests
//   - Snapshot helpers for building status snapshots inline
package testutil
