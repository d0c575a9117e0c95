// Package storage implements the persistence collaborators of the intake
// service.
//
// PostgresStore keeps trainer applications in the personal_trainers table
// through a lazily created pgx pool and translates driver failures into the
// interfaces storage sentinels (duplicate cref, schema missing, database
// unreachable). MemoryStore provides the same contract in process.
//
// S3PhotoStore uploads trainer photos to Amazon S3 or an S3-compatible
// service.
package storage
