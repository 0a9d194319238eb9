package abi

// Kind identifies the shape of a compiled type.
type Kind uint8

const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindString
	KindList
	KindTuple
	KindRecord
	KindEnum
)

var kindNames = [...]string{
	KindU8:     "u8",
	KindU16:    "u16",
	KindU32:    "u32",
	KindString: "string",
	KindList:   "list",
	KindTuple:  "tuple",
	KindRecord: "record",
	KindEnum:   "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
