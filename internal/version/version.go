package version

// Version is the current version of diskinfo.
// Bump it for every release that changes the inventory output.
// Use semantic versioning: MAJOR.MINOR.PATCH
const Version = "0.3.0"
