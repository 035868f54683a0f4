// Package s3 stores generated kubeconfigs in S3-compatible object storage.
//
// Any endpoint speaking the S3 API works (AWS, Hetzner Object Storage,
// MinIO). Credentials come from the options or, when omitted, from the
// default AWS credential chain.
package s3
