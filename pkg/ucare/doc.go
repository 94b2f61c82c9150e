// Package ucare provides clients for the Uploadcare REST and Upload APIs.
// The REST client covers the resource endpoints (files, groups, project,
// webhooks, conversions) and the Upload client covers file ingestion
// (direct, from URL and multipart uploads). Per-resource services live in
// their own packages (pkg/file, pkg/group, pkg/project, pkg/webhook,
// pkg/conversion, pkg/upload) and are constructed from these clients:
//
//	creds := ucare.APICreds{
//		SecretKey: os.Getenv("UCARE_SECRET_KEY"),
//		PublicKey: os.Getenv("UCARE_PUBLIC_KEY"),
//	}
//	client, err := ucare.NewRestClient(ucare.RestConfig{
//		SignBasedAuth: true,
//		APIVersion:    ucare.APIv06,
//	}, creds)
//	if err != nil {
//		// ...
//	}
//	fileSvc := file.NewService(client)
//	info, err := fileSvc.Info(ctx, fileID)
//
// Both clients are safe for concurrent use. Every call issues one blocking
// HTTP request and honours the supplied context.
package ucare
