// Package upload covers the Uploadcare Upload API, the ingestion side of
// the service. Every uploaded file is temporary and subject to deletion
// within a 24-hour period unless stored or copied.
//
// There are two basic upload modes:
//
//   - Direct uploads, a regular multipart/form-data mode that suits most
//     files less than 100MB in size.
//   - Multipart uploads for files larger than 10MB, implementing
//     accelerated uploads through a distributed network: parts go straight
//     to AWS S3 via presigned URLs.
//
// The package also supports uploading by public URL and creating file
// groups from uploaded file IDs, with or without CDN media processing
// operations applied.
package upload
