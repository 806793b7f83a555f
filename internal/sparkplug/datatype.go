package sparkplug

// DataType mirrors the numeric codes from the Sparkplug-B specification's
// Payload.Metric.DataType enumeration (§6.4.16 of the Sparkplug 3.0.0 spec).
type DataType uint32

const (
	DataTypeUnknown DataType = 0
	DataTypeInt8    DataType = 1
	DataTypeInt16   DataType = 2
	DataTypeInt32   DataType = 3
	DataTypeInt64   DataType = 4
	DataTypeUInt8   DataType = 5
	DataTypeUInt16  DataType = 6
	DataTypeUInt32  DataType = 7
	DataTypeUInt64  DataType = 8
	DataTypeFloat   DataType = 9
	DataTypeDouble  DataType = 10
	DataTypeBoolean DataType = 11
	DataTypeString  DataType = 12
	DataTypeDateTime DataType = 13
	DataTypeText    DataType = 14
	DataTypeUUID    DataType = 15
	DataTypeDataSet DataType = 16
	DataTypeBytes   DataType = 17
	DataTypeFile    DataType = 18
	DataTypeTemplate DataType = 19
)

// ValueKind is the dispatch bucket a DataType resolves a Metric's value
// into, per spec.md §4.2 ("value dispatches on datatype to
// int/uint/float/double/bool/string/bytes/dataset/template/extension").
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueUInt
	ValueFloat
	ValueDouble
	ValueBool
	ValueString
	ValueBytes
	ValueDataSet
	ValueTemplate
	ValueExtension
)

func (dt DataType) ValueKind() ValueKind {
	switch dt {
	case DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64:
		return ValueInt
	case DataTypeUInt8, DataTypeUInt16, DataTypeUInt32, DataTypeUInt64, DataTypeDateTime:
		return ValueUInt
	case DataTypeFloat:
		return ValueFloat
	case DataTypeDouble:
		return ValueDouble
	case DataTypeBoolean:
		return ValueBool
	case DataTypeString, DataTypeText, DataTypeUUID:
		return ValueString
	case DataTypeBytes, DataTypeFile:
		return ValueBytes
	case DataTypeDataSet:
		return ValueDataSet
	case DataTypeTemplate:
		return ValueTemplate
	default:
		return ValueExtension
	}
}

func (dt DataType) String() string {
	switch dt {
	case DataTypeInt8:
		return "Int8"
	case DataTypeInt16:
		return "Int16"
	case DataTypeInt32:
		return "Int32"
	case DataTypeInt64:
		return "Int64"
	case DataTypeUInt8:
		return "UInt8"
	case DataTypeUInt16:
		return "UInt16"
	case DataTypeUInt32:
		return "UInt32"
	case DataTypeUInt64:
		return "UInt64"
	case DataTypeFloat:
		return "Float"
	case DataTypeDouble:
		return "Double"
	case DataTypeBoolean:
		return "Boolean"
	case DataTypeString:
		return "String"
	case DataTypeDateTime:
		return "DateTime"
	case DataTypeText:
		return "Text"
	case DataTypeUUID:
		return "UUID"
	case DataTypeDataSet:
		return "DataSet"
	case DataTypeBytes:
		return "Bytes"
	case DataTypeFile:
		return "File"
	case DataTypeTemplate:
		return "Template"
	default:
		return "Unknown"
	}
}
