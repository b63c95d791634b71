// Package protocol implements the JSON control messages of the Foxglove
// WebSocket protocol.
//
// A Foxglove WebSocket server speaks the "foxglove.websocket.v1"
// subprotocol. Every control message is a JSON text frame with an "op"
// field naming the message:
//
//   - serverInfo: sent by the server right after the handshake
//   - status: informational, warning, or error notice from the server
//   - advertise: channels the server can publish
//   - subscribe / unsubscribe: sent by the client
//
// Binary message-data frames are out of scope; vizconnect only needs the
// handshake to confirm that a selected source is reachable and which server
// answered.
//
// # Usage Example - Parsing
//
//	_, data, err := conn.ReadMessage()
//	if err != nil {
//	    return err
//	}
//	msg, err := protocol.ParseMessage(data)
//	if err != nil {
//	    return err
//	}
//	if info, ok := msg.(*protocol.ServerInfo); ok {
//	    fmt.Println("connected to", info.Name)
//	}
//
// # Usage Example - Construction
//
//	data, err := protocol.Encode(protocol.NewServerInfo("demo", sessionID))
//	if err != nil {
//	    return err
//	}
//	err = conn.WriteMessage(websocket.TextMessage, data)
//
// # Thread Safety
//
// All parsing and construction functions are stateless and safe for concurrent use.
package protocol
