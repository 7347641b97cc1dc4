package errorsWithData

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	Modulus int
	Name    string
}

type otherData struct {
	Missing bool
}

var errBase = errors.New("base error")

func TestNewErrorWithData(t *testing.T) {
	err := NewErrorWithData_struct(errBase, "modulus %v{Modulus} of %v{Name} is bad", &testData{Modulus: 7, Name: "GF"})
	assert.Equal(t, "modulus 7 of GF is bad", err.Error())
	assert.True(t, errors.Is(err, errBase))
	assert.Equal(t, testData{Modulus: 7, Name: "GF"}, err.GetData_struct())

	value, ok := err.GetParameter("Modulus")
	assert.True(t, ok)
	assert.Equal(t, 7, value)
	assert.False(t, err.HasParameter("Torsion"))
}

func TestEmptyMessageUsesBase(t *testing.T) {
	err := AddDataToError_struct(errBase, &testData{})
	assert.Equal(t, errBase.Error(), err.Error())
}

func TestMissingInterpolation(t *testing.T) {
	err := NewErrorWithData_struct(errBase, "%v{Nope}", &testData{})
	assert.Contains(t, err.Error(), "MISSING Nope")
}

func TestDataThroughWrapping(t *testing.T) {
	inner := NewErrorWithData_struct(errBase, "", &testData{Modulus: 5})
	outer := fmt.Errorf("context: %w", inner)

	data, ok := GetData_struct[testData](outer)
	require.True(t, ok)
	assert.Equal(t, 5, data.Modulus)
	assert.True(t, HasData[testData](outer))
	assert.False(t, HasData[otherData](outer))
	assert.True(t, HasParameter(outer, "Name"))
	_, ok = GetData_struct[otherData](outer)
	assert.False(t, ok)

	assert.Empty(t, GetData_map(nil))
	assert.Empty(t, GetData_map(errBase))
}

func TestDataIsInherited(t *testing.T) {
	inner := NewErrorWithData_struct(errBase, "", &otherData{Missing: true})
	outer := NewErrorWithData_struct(inner, "", &testData{Modulus: 3})
	params := GetData_map(outer)
	assert.Equal(t, true, params["Missing"])
	assert.Equal(t, 3, params["Modulus"])
}

func TestGetDataMapIsCopy(t *testing.T) {
	err := NewErrorWithData_struct(errBase, "", &testData{Modulus: 3})
	params := err.GetData_map()
	params["Modulus"] = 4
	assert.Equal(t, 3, err.GetData_struct().Modulus)
}

func TestCheckParameterForStruct(t *testing.T) {
	assert.NotPanics(t, func() { CheckParameterForStruct[testData]("Modulus") })
	assert.Panics(t, func() { CheckParameterForStruct[testData]("modulus") })
	assert.Panics(t, func() { CheckParameterForStruct[int]("Modulus") })
}
