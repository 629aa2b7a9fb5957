package schema

import "fmt"

// FieldKind is the semantic role of one raw column within a Component.
type FieldKind int

const (
	// KindKm is the odometer reading at the last service.
	KindKm FieldKind = iota
	// KindDate is the date of the last service.
	KindDate
	// KindModel is the installed part brand/model.
	KindModel
	// KindInterval is the replacement interval in kilometers.
	KindInterval
	// KindLiters is the fluid volume used at service.
	KindLiters
	// KindHours is the hour-meter reading at the last service.
	KindHours
)

var kindNames = map[FieldKind]string{
	KindKm:       "km",
	KindDate:     "date",
	KindModel:    "model",
	KindInterval: "interval",
	KindLiters:   "liters",
	KindHours:    "hours",
}

func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler so FieldKind serializes
// as its name, including when used as a JSON map key.
func (k FieldKind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown field kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FieldKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown field kind %q", string(text))
}
