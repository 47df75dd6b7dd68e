package core

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/spf13/afero"

	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/model"
)

// BuildUploadOptions reads a candidate file and builds the options to upload it.
//
// The content is trimmed of leading and trailing whitespace, then base64 encoded.
// The language is inferred from the raw content and the path of the file.
//
// Extra export options from the configuration are added, and may override "filename"
// and "lang_iso", but never "data".
func BuildUploadOptions(fs afero.Fs, cfg model.Config, file model.CandidateFile) (model.UploadOptions, error) {
	raw, err := afero.ReadFile(fs, file.Path)
	if err != nil {
		return nil, status.ErrFileRead.Wrap(err).WithContext("%s", file.Path)
	}

	lang, err := cfg.InferLang(raw, file.Path)
	if err != nil {
		return nil, status.ErrLangInference.Wrap(err).WithContext("%s", file.Path)
	}
	if strings.TrimSpace(lang) == "" {
		return nil, status.ErrLangInference.WithContext("%s", file.Path)
	}

	opts := make(model.UploadOptions, len(cfg.ExportOptions)+3)
	opts[model.UploadKeyFilename] = file.RelativePath
	opts[model.UploadKeyLangISO] = lang

	for k, v := range cfg.ExportOptions {
		if k == model.UploadKeyData {
			continue
		}
		if k == model.UploadKeyFilename || k == model.UploadKeyLangISO {
			if s, ok := v.(string); !ok || s == "" {
				continue
			}
		}
		opts[k] = v
	}
	opts[model.UploadKeyData] = base64.StdEncoding.EncodeToString(bytes.TrimSpace(raw))

	return opts, nil
}
