// Package protobuf resolves `.proto` descriptor sets at runtime and
// provides dynamic encode/decode between protobuf wire bytes and the
// JSON/YAML/Text projections the payload conversion matrix needs, without
// requiring generated Go bindings for user-supplied schemas.
package protobuf

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"

	"github.com/mqtli-go/mqtli/internal/payload"
)

// Descriptor wraps a resolved message descriptor and implements
// payload.Descriptor.
type Descriptor struct {
	md *desc.MessageDescriptor
}

func (d Descriptor) FullName() string { return d.md.GetFullyQualifiedName() }

// MessageDescriptor exposes the underlying *desc.MessageDescriptor for
// callers (internal/sparkplug) that build dynamic.Message values directly
// against a descriptor resolved here.
func (d Descriptor) MessageDescriptor() *desc.MessageDescriptor { return d.md }

// Pool holds the file descriptors parsed from one topic's `.proto` set and
// resolves message names against them. It is read-only after
// LoadDescriptorSet and safe to share across goroutines.
type Pool struct {
	files []*desc.FileDescriptor
}

// LoadDescriptorSet parses the given `.proto` source files (and everything
// they import, resolved under importPaths) into a Pool. Parse failures and
// unresolved imports are fatal for the topic that references this set, per
// spec.md §4.2.
func LoadDescriptorSet(importPaths []string, files []string) (*Pool, error) {
	parser := protoparse.Parser{
		ImportPaths:           importPaths,
		IncludeSourceCodeInfo: false,
	}

	fds, err := parser.ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("protobuf: parse descriptor set: %w", err)
	}

	return &Pool{files: fds}, nil
}

// LoadDescriptorSetFromSource parses a single `.proto` file held in memory
// (no filesystem access) into a Pool. Used for schemas embedded in the
// binary, such as the fixed Sparkplug-B schema in internal/sparkplug.
func LoadDescriptorSetFromSource(filename, source string) (*Pool, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{filename: source}),
	}

	fds, err := parser.ParseFiles(filename)
	if err != nil {
		return nil, fmt.Errorf("protobuf: parse embedded schema %s: %w", filename, err)
	}

	return &Pool{files: fds}, nil
}

// Resolve finds messageName (fully qualified, e.g. "myapp.v1.Response")
// across every parsed file. Returns an error if not found, which is fatal
// at topic load time.
func (p *Pool) Resolve(messageName string) (Descriptor, error) {
	for _, fd := range p.files {
		if md := fd.FindMessage(messageName); md != nil {
			return Descriptor{md: md}, nil
		}
		if md := findNested(fd.GetMessageTypes(), messageName); md != nil {
			return Descriptor{md: md}, nil
		}
	}
	return Descriptor{}, fmt.Errorf("protobuf: message %q not found in descriptor set", messageName)
}

func findNested(msgs []*desc.MessageDescriptor, name string) *desc.MessageDescriptor {
	for _, md := range msgs {
		if md.GetFullyQualifiedName() == name || md.GetName() == name {
			return md
		}
		if found := findNested(md.GetNestedMessageTypes(), name); found != nil {
			return found
		}
	}
	return nil
}

var _ payload.Descriptor = Descriptor{}
