// Package bridge exposes schemas to host code as plain values.
//
// Every Message handed out by the bridge owns its state: copies are deep,
// field accessors return copies and write back explicitly, and messages
// delivered to a Handler are clones that remain valid after the frame
// loop returns. Read and write operations report a protocol.ErrorStatus
// instead of an error.
package bridge
