/*
Package ports defines the driven ports (interfaces) for the workshop engine.

These interfaces decouple the core model from external implementations,
allowing the engine to work with various storage backends.

# Key Interfaces

  - WorkshopStore: Responsible for persisting and loading whole workshop snapshots.
*/
package ports
