// Package protobuf resolves user-supplied `.proto` descriptor sets at
// runtime (no protoc, no generated bindings) and bridges them into the
// payload package's conversion matrix via dynamic messages.
package protobuf
