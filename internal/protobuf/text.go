package protobuf

import (
	"fmt"
	"strings"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"
)

// renderText produces the `[field_no] name = value (Type)` human-readable
// projection used for the Protobuf->Text conversion cell. Nested messages
// recurse with increasing indentation; repeated fields print one line per
// element.
func renderText(msg *dynamic.Message, indent int, parentLabel string) string {
	var sb strings.Builder

	pad := strings.Repeat("  ", indent)
	if parentLabel == "" {
		sb.WriteString(msg.GetMessageDescriptor().GetFullyQualifiedName())
		sb.WriteString("\n")
	} else {
		sb.WriteString(pad)
		sb.WriteString(parentLabel)
		sb.WriteString("\n")
	}

	for _, fd := range msg.GetMessageDescriptor().GetFields() {
		if !msg.HasField(fd) {
			continue
		}
		writeField(&sb, msg, fd, indent+1)
	}

	return sb.String()
}

func writeField(sb *strings.Builder, msg *dynamic.Message, fd *desc.FieldDescriptor, indent int) {
	pad := strings.Repeat("  ", indent)
	v := msg.GetField(fd)

	if fd.IsRepeated() {
		values, ok := v.([]interface{})
		if !ok {
			return
		}
		for _, elem := range values {
			writeScalarOrMessage(sb, fd, elem, indent, pad)
		}
		return
	}

	writeScalarOrMessage(sb, fd, v, indent, pad)
}

func writeScalarOrMessage(sb *strings.Builder, fd *desc.FieldDescriptor, v interface{}, indent int, pad string) {
	if fd.GetMessageType() != nil {
		nested, ok := v.(*dynamic.Message)
		if !ok {
			return
		}
		label := fmt.Sprintf("[%d] %s", fd.GetNumber(), nested.GetMessageDescriptor().GetFullyQualifiedName())
		sb.WriteString(renderText(nested, indent, label))
		return
	}

	typeName, rendered := renderScalar(fd, v)
	sb.WriteString(fmt.Sprintf("%s[%d] %s = %s (%s)\n", pad, fd.GetNumber(), fd.GetName(), rendered, typeName))
}

func renderScalar(fd *desc.FieldDescriptor, v interface{}) (typeName, rendered string) {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "Double", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "Float", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return "Int32", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return "Int64", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return "UInt32", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return "UInt64", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return "SInt32", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "SInt64", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "Fixed32", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "Fixed64", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return "SFixed32", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "SFixed64", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "Bool", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "String", fmt.Sprintf("%v", v)
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		b, _ := v.([]byte)
		return "Bytes", fmt.Sprintf("%v", b)
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		if ev := fd.GetEnumType(); ev != nil {
			if n, ok := v.(int32); ok {
				if val := ev.FindValueByNumber(n); val != nil {
					return "Enum", val.GetName()
				}
			}
		}
		return "Enum", fmt.Sprintf("%v", v)
	default:
		return "Unknown", fmt.Sprintf("%v", v)
	}
}
