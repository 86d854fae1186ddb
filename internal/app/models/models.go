// Package models defines the entities of the course-outline knowledge graph.
// All entities are immutable once a snapshot is built: the engine never
// creates, mutates, or deletes them at request time. Attributes that may be
// absent in the source outlines (marked "NA" during ingestion) are pointers;
// nil means the field was never populated and answers must say so.
package models
