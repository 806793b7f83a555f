package sparkplug

import (
	"github.com/jhump/protoreflect/desc"

	"github.com/mqtli-go/mqtli/internal/protobuf"
)

// schemaSource is the fixed Sparkplug-B payload schema (Eclipse Tahu
// sparkplug_b.proto, trimmed of java_package/outer_classname options which
// this codebase has no use for). It is parsed once at package init via
// protoreflect's in-memory accessor, the same descriptor machinery
// internal/protobuf uses for user-supplied schemas.
const schemaSource = `
syntax = "proto3";
package org.eclipse.tahu.protobuf;

message Payload {
  message PropertyValue {
    optional uint32 type = 1;
    optional bool is_null = 2;
    oneof value {
      uint32 int_value = 3;
      uint64 long_value = 4;
      float float_value = 5;
      double double_value = 6;
      bool boolean_value = 7;
      string string_value = 8;
    }
  }

  message PropertySet {
    repeated string keys = 1;
    repeated PropertyValue values = 2;
  }

  message MetaData {
    optional bool is_multi_part = 1;
    optional string content_type = 2;
    optional uint64 size = 3;
    optional uint64 seq = 4;
    optional string file_name = 5;
    optional string file_type = 6;
    optional string md5 = 7;
    optional string description = 8;
  }

  message DataSet {
    message DataSetValue {
      oneof value {
        uint32 int_value = 1;
        uint64 long_value = 2;
        float float_value = 3;
        double double_value = 4;
        bool boolean_value = 5;
        string string_value = 6;
      }
    }

    message Row {
      repeated DataSetValue elements = 1;
    }

    uint64 num_of_columns = 1;
    repeated string columns = 2;
    repeated uint32 types = 3;
    repeated Row rows = 4;
  }

  message Template {
    message Parameter {
      optional string name = 1;
      optional uint32 type = 2;
      oneof value {
        uint32 int_value = 3;
        uint64 long_value = 4;
        float float_value = 5;
        double double_value = 6;
        bool boolean_value = 7;
        string string_value = 8;
      }
    }

    repeated Metric metrics = 1;
    repeated Parameter parameters = 2;
    optional string template_ref = 3;
    optional bool is_definition = 4;
    optional uint64 version = 5;
  }

  message Metric {
    optional string name = 1;
    optional uint64 alias = 2;
    optional uint64 timestamp = 3;
    optional uint32 datatype = 4;
    optional bool is_historical = 5;
    optional bool is_transient = 6;
    optional bool is_null = 7;
    optional MetaData metadata = 8;
    optional PropertySet properties = 9;
    oneof value {
      uint32 int_value = 10;
      uint64 long_value = 11;
      float float_value = 12;
      double double_value = 13;
      bool boolean_value = 14;
      string string_value = 15;
      bytes bytes_value = 16;
      DataSet dataset_value = 17;
      Template template_value = 18;
    }
  }

  optional uint64 timestamp = 1;
  repeated Metric metrics = 2;
  optional uint64 seq = 3;
  optional string uuid = 4;
  repeated bytes body = 5;
}
`

const schemaFilename = "sparkplug_b.proto"

const (
	payloadMessage  = "org.eclipse.tahu.protobuf.Payload"
	metricMessage   = "org.eclipse.tahu.protobuf.Payload.Metric"
	templateMessage = "org.eclipse.tahu.protobuf.Payload.Template"
	datasetMessage  = "org.eclipse.tahu.protobuf.Payload.DataSet"
)

var (
	pool         *protobuf.Pool
	payloadDesc  protobuf.Descriptor
	metricDesc   *desc.MessageDescriptor
	templateDesc *desc.MessageDescriptor
	datasetDesc  *desc.MessageDescriptor
)

func init() {
	p, err := protobuf.LoadDescriptorSetFromSource(schemaFilename, schemaSource)
	if err != nil {
		panic("sparkplug: embedded schema failed to parse: " + err.Error())
	}
	pool = p

	payloadDesc = mustResolve(payloadMessage)
	metricDesc = mustResolve(metricMessage).MessageDescriptor()
	templateDesc = mustResolve(templateMessage).MessageDescriptor()
	datasetDesc = mustResolve(datasetMessage).MessageDescriptor()
}

func mustResolve(name string) protobuf.Descriptor {
	d, err := pool.Resolve(name)
	if err != nil {
		panic("sparkplug: embedded schema missing " + name + ": " + err.Error())
	}
	return d
}
