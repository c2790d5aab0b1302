// Package objectstore reads uploaded documents from object storage.
// MinioStore talks to any S3-compatible service (AWS S3, MinIO) and GCSStore
// to Google Cloud Storage. Both return the object decoded as UTF-8 text.
package objectstore
