// Package ontology provides the term lookup back-ends used by semantic
// validation.
//
// Every back-end implements mztab.TermLookup:
//
//   - Graph holds an ontology parsed from an OBO file in memory.
//   - OLSClient queries an OLS-compatible HTTP service.
//   - PGStore reads terms imported into Postgres.
//   - RedisCache decorates any back-end with a shared TTL cache.
//   - Memo de-duplicates identical comparisons within one validation pass.
//
// All of them share the comparison algorithm in Relate.
package ontology
