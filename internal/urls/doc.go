// Package urls provides centralized constants for all documentation URLs used
// throughout the application.
//
// The built-in connector catalog links to these pages from the dialog's
// "View docs." line, so they are kept in one place and can be updated before
// a release without hunting through code.
//
// Usage:
//
//	import "github.com/muurk/vizconnect/internal/urls"
//
//	fmt.Printf("For more information, see: %s\n", urls.FoxgloveWebSocket)
package urls
