package urls

// Documentation URLs for connectors and troubleshooting
// All connector URLs point to the upstream data source documentation.

// FoxgloveWebSocket describes the Foxglove WebSocket protocol and the
// bridges that speak it (ROS 1, ROS 2, custom servers).
const FoxgloveWebSocket = "https://docs.foxglove.dev/docs/connecting-to-data/frameworks/custom#foxglove-websocket"

// Rosbridge covers connecting through a rosbridge_server instance.
const Rosbridge = "https://docs.foxglove.dev/docs/connecting-to-data/frameworks/ros1#rosbridge"

// ROS1Native covers native ROS 1 connections via a ROS master.
const ROS1Native = "https://docs.foxglove.dev/docs/connecting-to-data/frameworks/ros1#native"

// ROS2Native covers native ROS 2 (DDS) connections.
const ROS2Native = "https://docs.foxglove.dev/docs/connecting-to-data/frameworks/ros2"

// VelodyneLidar covers streaming packets from a Velodyne sensor over UDP.
const VelodyneLidar = "https://docs.foxglove.dev/docs/connecting-to-data/hardware/velodyne"

// RemoteFile covers opening a recording served over HTTP(S).
const RemoteFile = "https://docs.foxglove.dev/docs/connecting-to-data/cloud-data/remote-files"

// TroubleshootingGuide provides solutions to common connection issues.
const TroubleshootingGuide = "https://docs.foxglove.dev/docs/connecting-to-data/introduction"
