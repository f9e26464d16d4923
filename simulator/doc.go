// Package simulator provides an in-process double of a device's management API.
//
// The simulator serves the same endpoints a real device exposes -- the four
// JSON management endpoints plus the websocket performance stream -- from
// configurable DTO values, enforcing HTTP Basic Auth and recording every
// request it receives. It exists so the library's own tests, and programs
// built on the library, can run against a fake device instead of hardware.
//
// # Usage Example
//
//	device := simulator.NewDevice()
//	device.MachineName.Name = "TESTBOX"
//	device.Username = "admin"
//	device.Password = "secret"
//
//	server := httptest.NewServer(device.Handler())
//	defer server.Close()
//
//	// Point a client at it
//	u, _ := url.Parse(server.URL)
//	port, _ := strconv.Atoi(u.Port())
//	conn := devportal.NewConnection(u.Hostname(), port)
//	client, _ := devportal.NewConfiguredClient(conn, devportal.NewCredentials("admin", "secret"))
//
//	name, _ := client.GetMachineName() // "TESTBOX"
//	_ = name
//
// # Shaping Responses
//
// Endpoint bodies are marshaled from the Device's exported DTO fields. Use
// SetRawResponse to serve a literal body instead (empty strings and
// malformed JSON included), which is how decode-failure behavior is tested.
//
// # Request Recording
//
// Every request is recorded with its method, path and presented basic-auth
// material. Requests and RequestCount let tests assert exactly which calls a
// client issued and with which credentials.
package simulator
