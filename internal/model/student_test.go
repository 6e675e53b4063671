package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsGetSet(t *testing.T) {
	var f Fields
	for _, name := range FieldOrder {
		assert.True(t, f.Set(name, name+"-value"))
	}
	assert.Equal(t, "name-value", f.Name)
	assert.Equal(t, "age-value", f.Age)
	assert.Equal(t, "className-value", f.ClassName)
	assert.Equal(t, "phoneNumber-value", f.PhoneNumber)
	for _, name := range FieldOrder {
		assert.Equal(t, name+"-value", f.Get(name))
	}

	assert.False(t, f.Set("email", "x"))
	assert.Empty(t, f.Get("email"))
}

func TestDraftFrom(t *testing.T) {
	s := Student{ID: "42", Name: "Ada", Age: "30", ClassName: "CS", PhoneNumber: "1234567890"}
	d := DraftFrom(s)

	assert.True(t, d.Editing())
	assert.Equal(t, "42", d.ID)
	assert.Equal(t, s.Fields(), d.Fields)
	assert.False(t, Draft{}.Editing())
}
