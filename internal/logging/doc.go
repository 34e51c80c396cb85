// Package logging implements mztab.Logger.
//
// ConsoleLogger formats printf-style messages through a zap console core
// ("LEVEL message"), with Verbose mapped to zap's debug level so it only
// appears when verbose output was requested. NullLogger discards everything.
package logging
