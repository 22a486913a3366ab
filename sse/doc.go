// Package sse provides Server-Sent Events (SSE) infrastructure for
// streaming reactive cell updates to connected clients.
//
// Clients subscribe to named topics, one per exposed cell or pipeline
// output. BindCell attaches a cell to a topic so that every value the
// cell settles on is broadcast to that topic's clients as a JSON
// ValueEvent.
//
// # Architecture
//
//   - Hub: central event router managing client subscriptions by topic
//   - Client: a connected subscriber with a buffered event channel
//   - BindCell: bridges a cell's notifications into hub broadcasts
//   - ServeSSE: HTTP handler streaming hub events to a client
//
// # Usage
//
//	hub := sse.NewHub()
//	go hub.Run()
//	unbind, _ := sse.BindCell(hub, "search", debounced)
//	defer unbind()
//	router.GET("/v1/stream", func(c *gin.Context) {
//	    sse.ServeSSE(hub, c.Writer, c.Request, uuid.NewString())
//	})
package sse
