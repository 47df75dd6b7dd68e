// Package model describes the base objects manipulated by l10nsync.
//
// The object model for l10nsync is composed of:
//
// Config: the immutable settings of a single export or import task. It tells where the local
// translation files live, which remote project they belong to, and how files are
// filtered and tagged with a language.
//
// Candidate files and upload options: a candidate file is a local file selected for export.
// Each one is turned into a set of upload options (base64 content, file name, language)
// sent to the remote service.
//
// Processes: the remote service acknowledges every upload with a process, which is queued server-side.
//
// Bundles: a bundle is a zip archive produced by the remote service, holding one translation
// file per language. The bundle descriptor tells where to fetch the archive from.
package model
