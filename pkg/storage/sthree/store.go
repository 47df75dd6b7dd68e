package sthree

import (
	"context"
	"io"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/storage"
)

// Option is a functor to pass optional parameters to the s3 store
type Option func(*s3FS)

// Bucket sets the bucket for this store
func Bucket(bucket string) Option {
	return func(fs *s3FS) {
		fs.bucket = bucket
	}
}

// AWSConfig overrides the AWS session configuration (region, endpoint, credentials...)
func AWSConfig(cfg *aws.Config) Option {
	return func(fs *s3FS) {
		fs.awsConfig = cfg
	}
}

// Logger specifies a logger for this store
func Logger(logger *zap.Logger) Option {
	return func(fs *s3FS) {
		if logger != nil {
			fs.l = logger
		}
	}
}

// New builds a store backed by a S3 bucket
func New(option Option, options ...Option) (storage.Store, error) {
	fs := &s3FS{
		awsConfig: aws.NewConfig(),
		l:         zap.NewNop(),
	}
	option(fs)
	for _, apply := range options {
		apply(fs)
	}

	sess, err := session.NewSession(fs.awsConfig)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	fs.s3 = s3.New(sess)
	fs.uploader = s3manager.NewUploaderWithClient(fs.s3)
	return fs, nil
}

type s3FS struct {
	bucket    string
	awsConfig *aws.Config
	s3        *s3.S3
	uploader  *s3manager.Uploader
	l         *zap.Logger
}

func (s *s3FS) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.s3.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if err = filterErrNotExists(toSentinelErrors(err)); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (s *s3FS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.l.Debug("Start Get", zap.String("bucket", s.bucket), zap.String("key", key))
	obj, err := s.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return obj.Body, nil
}

// Put uploads an object. S3 offers no conditional write, so the overwrite flag is ignored.
func (s *s3FS) Put(ctx context.Context, key string, rdr io.Reader, _ bool) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   rdr,
	})
	return toSentinelErrors(err)
}

func (s *s3FS) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	eachPage := func(page *s3.ListObjectsV2Output, more bool) bool {
		for _, obj := range page.Contents {
			key := aws.StringValue(obj.Key)
			if key != "" {
				keys = append(keys, key)
			}
		}
		return true
	}
	params := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}

	if err := s.s3.ListObjectsV2PagesWithContext(ctx, params, eachPage); err != nil {
		return nil, toSentinelErrors(err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *s3FS) String() string {
	return "s3://" + s.bucket
}
