/*
Package query implements the read side of the workshop model: filtering,
case-insensitive text search, timeline ordering, bounded context overviews,
and the shared pagination contract.

All functions are pure over a workshop snapshot; they never mutate it.
*/
package query
