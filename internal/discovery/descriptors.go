package discovery

import (
	"fmt"

	"github.com/muurk/vizconnect/internal/source"
	"github.com/muurk/vizconnect/internal/urls"
)

// Descriptors turns discovered services into connectors for the dialog.
// Each connector speaks the Foxglove WebSocket protocol, so its ID is the
// built-in connector ID with the service address appended after "@".
// Services with the same address are listed once.
func Descriptors(services []*Service) []source.Descriptor {
	seen := make(map[string]bool)
	descriptors := make([]source.Descriptor, 0, len(services))

	for _, svc := range services {
		id := fmt.Sprintf("%s@%s", source.FoxgloveWebSocketID, svc.Address())
		if seen[id] {
			continue
		}
		seen[id] = true

		descriptors = append(descriptors, source.Descriptor{
			ID:          id,
			DisplayName: svc.DisplayName(),
			Icon:        "◎",
			Description: fmt.Sprintf("Foxglove WebSocket server found on the local network at %s.", svc.Address()),
			DocsLink:    urls.FoxgloveWebSocket,
			FormConfig: &source.FormConfig{Fields: []source.Field{
				{
					ID:           "url",
					Label:        "WebSocket URL",
					DefaultValue: source.StringPtr(svc.URL()),
					Validate:     "url:ws,wss",
				},
			}},
		})
	}
	return descriptors
}
