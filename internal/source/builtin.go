package source

import "github.com/muurk/vizconnect/internal/urls"

// Built-in connector IDs
const (
	FoxgloveWebSocketID = "foxglove-websocket"
	RosbridgeID         = "rosbridge-websocket"
	ROS1ID              = "ros1-socket"
	ROS2ID              = "ros2-socket"
	VelodyneID          = "velodyne-device"
	RemoteFileID        = "remote-file"
)

// Builtin returns the connectors shipped with the application, in display
// order. Each call returns fresh values so callers may modify the result.
func Builtin() []Descriptor {
	return []Descriptor{
		{
			ID:          FoxgloveWebSocketID,
			DisplayName: "Foxglove WebSocket",
			Icon:        "◉",
			Description: "Connect to a ROS 1, ROS 2, or custom system using the Foxglove WebSocket protocol.",
			DocsLink:    urls.FoxgloveWebSocket,
			FormConfig: &FormConfig{Fields: []Field{
				{
					ID:           "url",
					Label:        "WebSocket URL",
					DefaultValue: StringPtr("ws://localhost:8765"),
					Validate:     "url:ws,wss",
				},
			}},
		},
		{
			ID:          RosbridgeID,
			DisplayName: "Rosbridge",
			Icon:        "⇄",
			Description: "Connect to a ROS 1 or ROS 2 system using the Rosbridge WebSocket protocol.",
			Warning:     "Rosbridge is slower than Foxglove WebSocket and may drop high-frequency topics.",
			DocsLink:    urls.Rosbridge,
			FormConfig: &FormConfig{Fields: []Field{
				{
					ID:           "url",
					Label:        "WebSocket URL",
					DefaultValue: StringPtr("ws://localhost:9090"),
					Validate:     "url:ws,wss",
				},
			}},
		},
		{
			ID:          ROS1ID,
			DisplayName: "ROS 1",
			Icon:        "①",
			Description: "Connect to a running ROS 1 system through its ROS master.",
			DocsLink:    urls.ROS1Native,
			FormConfig: &FormConfig{Fields: []Field{
				{
					ID:           "url",
					Label:        "ROS_MASTER_URI",
					DefaultValue: StringPtr("http://localhost:11311"),
					Validate:     "url:http,https",
				},
				{
					ID:          "hostname",
					Label:       "ROS_HOSTNAME",
					Placeholder: "localhost",
					Description: "Host name other ROS nodes use to reach this machine.",
					Validate:    RuleHostname,
				},
			}},
		},
		{
			ID:             ROS2ID,
			DisplayName:    "ROS 2",
			Icon:           "②",
			Description:    "Connect to a running ROS 2 system over DDS.",
			DocsLink:       urls.ROS2Native,
			DisabledReason: StringPtr("Native ROS 2 connections are not available in the terminal build. Use Foxglove WebSocket with foxglove_bridge instead."),
			FormConfig: &FormConfig{Fields: []Field{
				{
					ID:           "domainId",
					Label:        "ROS_DOMAIN_ID",
					DefaultValue: StringPtr("0"),
				},
			}},
		},
		{
			ID:          VelodyneID,
			DisplayName: "Velodyne Lidar",
			Icon:        "⊛",
			Description: "Stream packets from a Velodyne sensor on the local network.",
			DocsLink:    urls.VelodyneLidar,
			FormConfig: &FormConfig{Fields: []Field{
				{
					ID:           "port",
					Label:        "UDP port",
					DefaultValue: StringPtr("2369"),
					Validate:     RulePort,
				},
			}},
		},
		{
			ID:          RemoteFileID,
			DisplayName: "Remote file",
			Icon:        "⇣",
			Description: "Open a recording served over HTTP. The server must support range requests.",
			DocsLink:    urls.RemoteFile,
			FormConfig: &FormConfig{Fields: []Field{
				{
					ID:          "url",
					Label:       "File URL",
					Placeholder: "https://example.com/recording.mcap",
					Validate:    "url:http,https",
				},
			}},
		},
	}
}

// Merge appends extra connectors to base. An extra connector whose ID matches
// a connector in base replaces it in place.
func Merge(base, extra []Descriptor) []Descriptor {
	merged := make([]Descriptor, len(base), len(base)+len(extra))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, d := range merged {
		index[d.ID] = i
	}

	for _, d := range extra {
		if i, ok := index[d.ID]; ok {
			merged[i] = d
			continue
		}
		index[d.ID] = len(merged)
		merged = append(merged, d)
	}
	return merged
}

// Find returns the connector with the given ID.
func Find(sources []Descriptor, id string) (Descriptor, bool) {
	for _, d := range sources {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}
