// Package main hosts the archiveboard CLI entrypoint and command graph.
//
// The Cobra-based command tree opens the catalog and media store directly
// (there is no daemon to dial) and drives them through the orchestrator:
// archive, show, query, tag and remove commands translate terminal
// invocations into the same workflow calls an embedding HTTP service would
// make. It centralizes configuration resolution and structured logging
// setup so subcommands can focus on output formatting.
package main
