package internal

// Version is the current selectrans release.
const Version = "0.4.0"
