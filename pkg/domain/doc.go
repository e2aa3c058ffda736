/*
Package domain contains the core domain model for an Event Storming workshop.

It defines the workshop aggregate (metadata, elements, bounded contexts) and the
mutation operations that keep the denormalized relationships between elements and
contexts consistent. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Workshop: The aggregate root. One workshop snapshot is the unit of load/mutate/save.
  - Element: A typed sticky note (event, command, actor, ...) carrying trigger relationships.
  - BoundedContext: A named DDD grouping of elements.

The trigger relationships form a directed graph over element IDs. The graph is not
required to be acyclic; everything that walks it (see package flow) must tolerate cycles.
*/
package domain
