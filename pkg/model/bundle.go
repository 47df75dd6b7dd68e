// Copyright © 2018 One Concern

package model

// Process is the acknowledgement of an upload by the remote service.
//
// The core never inspects it beyond propagating it to the caller.
type Process struct {
	ID        string `json:"process_id" yaml:"id"`
	ProjectID string `json:"project_id" yaml:"project"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	_         struct{}
}

// Queued tells if the remote service accepted the upload for later processing
func (p Process) Queued() bool {
	return p.Status == "queued"
}

// BundleDescriptor tells where the archive produced by a download request may be fetched from
type BundleDescriptor struct {
	ProjectID string `json:"project_id" yaml:"project"`
	// BundleURL is either a remote URL (http, https, gs, s3) or a local path
	BundleURL string `json:"bundle_url" yaml:"url"`
	_         struct{}
}

// ArchiveEntry is a single file found in a bundle archive
type ArchiveEntry struct {
	// Name is the path of the entry in the archive, relative to the root directory
	Name    string
	Content []byte
}
