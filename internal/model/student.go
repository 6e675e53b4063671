package model

// Student is one record of the remote directory. ID is assigned by the store
// and treated as opaque text; Age and PhoneNumber stay text until validated.
type Student struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Age         string `json:"age"`
	ClassName   string `json:"className"`
	PhoneNumber string `json:"phoneNumber"`
}

// Fields returns the editable attributes of s.
func (s Student) Fields() Fields {
	return Fields{
		Name:        s.Name,
		Age:         s.Age,
		ClassName:   s.ClassName,
		PhoneNumber: s.PhoneNumber,
	}
}

// Fields are the four user-editable attributes, as typed.
type Fields struct {
	Name        string `json:"name" validate:"required"`
	Age         string `json:"age" validate:"required,numberlike"`
	ClassName   string `json:"className" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,len=10,digits"`
}

// Field names as they appear on the wire and in validation errors.
const (
	FieldName        = "name"
	FieldAge         = "age"
	FieldClassName   = "className"
	FieldPhoneNumber = "phoneNumber"
)

// FieldOrder is the order the form presents fields in.
var FieldOrder = []string{FieldName, FieldAge, FieldClassName, FieldPhoneNumber}

// Get returns the value of the named field, or "" for an unknown name.
func (f Fields) Get(name string) string {
	switch name {
	case FieldName:
		return f.Name
	case FieldAge:
		return f.Age
	case FieldClassName:
		return f.ClassName
	case FieldPhoneNumber:
		return f.PhoneNumber
	}
	return ""
}

// Set assigns the named field. It reports false for an unknown name.
func (f *Fields) Set(name, value string) bool {
	switch name {
	case FieldName:
		f.Name = value
	case FieldAge:
		f.Age = value
	case FieldClassName:
		f.ClassName = value
	case FieldPhoneNumber:
		f.PhoneNumber = value
	default:
		return false
	}
	return true
}

// Draft is the transient form state. An empty ID means create mode.
type Draft struct {
	Fields
	ID string
}

// Editing reports whether the draft targets an existing record.
func (d Draft) Editing() bool { return d.ID != "" }

// DraftFrom populates a draft from an existing record.
func DraftFrom(s Student) Draft {
	return Draft{Fields: s.Fields(), ID: s.ID}
}
