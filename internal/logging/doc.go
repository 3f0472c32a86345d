// Package logging builds the slog loggers used across storyreel.
//
// It provides a console handler for interactive use, a JSON handler for log
// files and scripting, attribute helpers shared by every package, and a no-op
// logger for tests. Loggers are passed explicitly; nothing in this repository
// logs through a global.
package logging
