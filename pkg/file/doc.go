// Package file covers the /files/ resource of the Uploadcare REST API.
// The file resource handles user-uploaded files and is the main Uploadcare
// resource. Each uploaded file has an ID (UUID) that is assigned once and
// never changes later.
//
// Listing is cursor style: List returns one page together with absolute
// next/previous URLs which GetPage follows:
//
//	list, err := svc.List(ctx, file.ListParams{Limit: 10, Ordering: file.OrderBySize})
//	for err == nil && list.Next != "" {
//		list, err = svc.GetPage(ctx, list.Next)
//	}
package file
