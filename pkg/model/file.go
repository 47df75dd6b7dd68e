package model

// Keys of upload options that are always computed from the file itself
const (
	UploadKeyData     = "data"
	UploadKeyFilename = "filename"
	UploadKeyLangISO  = "lang_iso"
)

// CandidateFile is a local file selected for export
type CandidateFile struct {
	// Path of the file, as found under the root directory
	Path string
	// RelativePath to the root directory, with forward slashes
	RelativePath string
}

// UploadOptions describe a single file upload: the required keys
// ("data", "filename", "lang_iso") plus any extra protocol options.
type UploadOptions map[string]interface{}

// Data is the base64 encoded content of the file
func (o UploadOptions) Data() string { return o.str(UploadKeyData) }

// Filename is the path of the file relative to the root directory
func (o UploadOptions) Filename() string { return o.str(UploadKeyFilename) }

// LangISO is the inferred language code
func (o UploadOptions) LangISO() string { return o.str(UploadKeyLangISO) }

func (o UploadOptions) str(key string) string {
	s, _ := o[key].(string)
	return s
}
