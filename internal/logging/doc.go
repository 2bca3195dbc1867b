// Package logging is the structured logging facade used by the multiplier,
// the plan cache and the CLI. Components depend on the Logger interface;
// the zerolog adapter backs it in production and Nop silences it in tests.
package logging
