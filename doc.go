// Package devportal provides an HTTP client for a device's management API.
//
// This package implements a thin client over the device's local management
// endpoints, exposing typed getters for the machine name, operating system
// info, IP configuration and installed application packages. Requests use
// HTTP Basic Auth; responses are flat JSON documents decoded into plain
// DTO structs.
//
// # Usage Example
//
//	conn := devportal.NewConnection("192.168.1.42", 80)
//	creds := devportal.NewCredentials("admin", "p@ssw0rd")
//
//	client, err := devportal.NewConfiguredClient(conn, creds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	name, err := client.GetMachineName()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("connected to", name.Name)
//
// A zero client from NewClient is unusable until Initialize is called with
// both a connection and credentials. Replacing either value afterwards (via
// SetConnection or SetCredentials) rebuilds the underlying transport, so the
// next fetch uses the new endpoint or auth material.
//
// # Best-Effort Decoding
//
// The device sometimes answers with an empty body, a literal null, or a
// truncated document. The fetch operations collapse all of those to the
// DTO's zero value instead of returning an error: callers cannot distinguish
// "device has no data" from "response was malformed". This mirrors the
// device's own best-effort contract. Enable debug logging (see the logging
// package) to observe discarded bodies. Transport-level failures -- refused
// connections, timeouts, DNS errors, non-2xx statuses -- are still returned
// as typed errors.
//
// # Concurrency
//
// Fetch operations are independent, idempotent reads and are safe to issue
// concurrently. Mutating the connection or credentials while fetches are in
// flight is best effort: in-flight operations may use either the old or the
// new transport depending on timing. Reconfigure the client only when it is
// quiescent, or build a fresh client via NewConfiguredClient instead.
//
// # Error Handling
//
// Errors are *DeviceError values categorized by ErrorType (invalid argument,
// precondition, network, auth, HTTP) with Is* helpers for classification.
// Network errors are further classified into timeout, connection-refused and
// DNS failures. No retries are performed at this layer.
package devportal
