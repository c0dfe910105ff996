// Package testutil provides shared test doubles and fluent builders for the
// linebrain test suites: a recording platform client, a scripted reasoning
// engine and inbound event builders.
package testutil
