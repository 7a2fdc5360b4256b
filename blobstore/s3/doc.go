// Package s3 implements blobstore.Store for Amazon S3, plus a DynamoDB-backed
// commit store that publishes the CURRENT snapshot pointer with conditional
// writes so multiple writers can coordinate safely.
package s3
