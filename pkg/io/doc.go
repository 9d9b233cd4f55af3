// Package io writes rendered output to a file system.
//
// # Overview
//
// Rendering is all-or-nothing: a backend produces the complete output in
// memory before anything touches the disk. This package finishes the job by
// replacing the destination file atomically, so a reader never observes a
// partially written file and a failed write leaves the previous contents
// intact.
//
// # File Systems
//
// All functions take an [afero.Fs]. Production code passes
// [afero.NewOsFs]; tests use [afero.NewMemMapFs]:
//
//	fs := afero.NewMemMapFs()
//	err := io.WriteFileAtomic(fs, "out/logo.svg", data, 0o644)
//
// # Atomicity
//
// [WriteFileAtomic] writes to a temporary file in the destination
// directory, syncs it, and renames it over the destination. The temporary
// file is removed on every error path.
package io
