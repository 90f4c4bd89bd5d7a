// Package testutil holds helpers shared by package tests: temp files, an
// extended-attribute support probe for the host filesystem, and
// deterministic clock and ID sources for golden output.
package testutil
