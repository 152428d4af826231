// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Headless autopilot runs, JSON snapshot export, .env configuration
// 0.2.0 - Background panorama, drag-to-orbit camera, reset key
// 0.1.0 - Initial release: orbit rings, star burst, pointer capture and progression
