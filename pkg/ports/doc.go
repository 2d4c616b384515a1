/*
Package ports defines the driven ports (interfaces) for the hive engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various storage backends and journal sinks,
and letting host adapters (MCP, HTTP, CLI) drive the engine without knowing
its concrete type.

# Key Interfaces

  - HexStore: durable mapping from hex id to hex record.
  - JourneyJournal: append-only sink for durable journey steps.
  - Navigator: the engine surface consumed by host adapters.
*/
package ports
