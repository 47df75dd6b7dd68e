// Copyright © 2018 One Concern

// Package storage provides interface to handle backend storage objects.
//
// Stores are used by l10nsync to fetch bundle archives from wherever the remote
// service made them available, and to write extracted translation files to disk.
//
// This package supports the following backends:
//
//   - GCS (Google)
//   - S3 (AWS)
//   - HTTP(S) (read only)
//   - local file system
package storage
