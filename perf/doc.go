// Package perf streams live system performance counters from a device.
//
// The device exposes running performance data as JSON frames over a
// websocket upgrade of the management API at
// /api/resourcemanager/systemperf. This package dials that endpoint with the
// same connection and credential values the devportal client uses and
// delivers decoded readings on a channel.
//
// # Usage Example
//
//	stream, err := perf.Connect(ctx, conn, creds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for reading := range stream.Readings() {
//	    fmt.Printf("cpu=%d%% mem=%d pages\n", reading.CPULoad, reading.MemoryUsedPages())
//	}
//	if err := stream.Err(); err != nil {
//	    log.Printf("stream ended: %v", err)
//	}
//
// Frames that fail to decode are discarded (logged at debug level), matching
// the best-effort contract of the devportal fetch operations. Connection
// failures end the stream and are reported by Err.
package perf
