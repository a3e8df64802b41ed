// Package cloudwriter uploads run artifacts (the schedule table and the map
// document) to object storage.
package cloudwriter

import (
	"fmt"
	"os"
	"path"
)

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}

// UploadFile copies a local artifact to <prefix>/<basename> in the bucket.
func UploadFile(factory CloudWriterFactory, bucket, prefix, localPath string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", localPath, err)
	}

	w, err := factory.NewWriter(bucket, path.Join(prefix, path.Base(localPath)))
	if err != nil {
		return fmt.Errorf("create cloud writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write artifact %s: %w", localPath, err)
	}
	return w.Close()
}
