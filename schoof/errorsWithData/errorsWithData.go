// Package errorsWithData provides errors that carry additional parameters.
//
// The parameters are stored as a map[string]any, which is typically filled from a struct with exported fields.
// Errors created by this package always wrap some base error (possibly nil), so callers are expected to
// use [errors.Is] against the base error for classification and then use the functions of this package
// to retrieve the attached data.
//
// Error message strings may refer to the parameters by using %v{ParameterName}, which is replaced by
// the fmt.Sprint - formatted value of the parameter when calling Error().
package errorsWithData

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// ErrorPrefix is a prefix added to all *internal* error messages/panics that originate from this package.
const ErrorPrefix = "schoof / error handling: "

// ParamMap is the map type used to store parameters of errors.
type ParamMap = map[string]any

// ErrorWithData_any is an interface extending error to also contain arbitrary parameters
// in the form of a map[string]any
type ErrorWithData_any interface {
	error
	Unwrap() error
	// GetParameter obtains the value stored under the given parameterName and whether it was present. Returns (nil, false) if not.
	GetParameter(parameterName string) (value any, wasPresent bool)
	// HasParameter returns whether parameterName is a key of the parameter map.
	HasParameter(parameterName string) bool
	// GetData_map returns a shallow copy of the parameter map.
	GetData_map() ParamMap
}

// ErrorWithData[StructType] is an interface extending [ErrorWithData_any].
// Any non-nil error returned in such an interface is guaranteed to contain the data of an instance of StructType.
type ErrorWithData[StructType any] interface {
	ErrorWithData_any
	GetData_struct() StructType
}

// errorWithParameters is the only implementation of the interfaces above.
// We never hand out concrete (possibly nil) pointers to it, only interfaces.
type errorWithParameters[StructType any] struct {
	wrapped error
	message string
	params  ParamMap
}

var interpolationPattern = regexp.MustCompile(`%v\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func (e *errorWithParameters[StructType]) Error() string {
	if e.message == "" {
		if e.wrapped == nil {
			return "<nil error with data>"
		}
		return e.wrapped.Error()
	}
	return interpolationPattern.ReplaceAllStringFunc(e.message, func(match string) string {
		name := interpolationPattern.FindStringSubmatch(match)[1]
		value, ok := e.params[name]
		if !ok {
			return "%!v(MISSING " + name + ")"
		}
		return fmt.Sprint(value)
	})
}

func (e *errorWithParameters[StructType]) Unwrap() error {
	return e.wrapped
}

func (e *errorWithParameters[StructType]) GetParameter(parameterName string) (value any, wasPresent bool) {
	value, wasPresent = e.params[parameterName]
	return
}

func (e *errorWithParameters[StructType]) HasParameter(parameterName string) bool {
	_, ok := e.params[parameterName]
	return ok
}

func (e *errorWithParameters[StructType]) GetData_map() ParamMap {
	ret := make(ParamMap, len(e.params))
	for key, value := range e.params {
		ret[key] = value
	}
	return ret
}

func (e *errorWithParameters[StructType]) GetData_struct() StructType {
	ret, err := makeStructFromMap[StructType](e.params)
	if err != nil {
		// cannot happen, since we created params from a StructType
		panic(err)
	}
	return ret
}

// NewErrorWithData_struct creates a new error wrapping baseError with the given message and the parameters taken from *data.
//
// If message is empty, the error message of baseError is used. data must be a pointer to a struct whose fields are all exported.
func NewErrorWithData_struct[StructType any](baseError error, message string, data *StructType) ErrorWithData[StructType] {
	if data == nil {
		panic(ErrorPrefix + "called NewErrorWithData_struct with nil data")
	}
	params := make(ParamMap)
	fillMapFromStruct(data, params)
	// Parameters already present in the error chain of baseError are kept, unless overwritten.
	for key, value := range GetData_map(baseError) {
		if _, present := params[key]; !present {
			params[key] = value
		}
	}
	return &errorWithParameters[StructType]{wrapped: baseError, message: message, params: params}
}

// AddDataToError_struct is equivalent to NewErrorWithData_struct(baseError, "", data)
func AddDataToError_struct[StructType any](baseError error, data *StructType) ErrorWithData[StructType] {
	return NewErrorWithData_struct(baseError, "", data)
}

// GetData_map returns a map for all parameters stored in the error, including all of err's error chain.
// For err==nil or if no error in err's error chain has any data, returns an empty map.
func GetData_map(err error) ParamMap {
	for errorChain := err; errorChain != nil; errorChain = errors.Unwrap(errorChain) {
		if errChainGood, ok := errorChain.(ErrorWithData_any); ok {
			return errChainGood.GetData_map()
		}
	}
	return make(ParamMap)
}

// HasParameter checks whether some error in err's error chain contains a parameter keyed by parameterName
func HasParameter(err error, parameterName string) bool {
	_, ok := GetParameter(err, parameterName)
	return ok
}

// GetParameter returns the value stored under the key parameterName in the first error in err's error chain
// that has parameters.
// If no entry was found in the error chain or err==nil, returns (nil, false).
func GetParameter(err error, parameterName string) (value any, wasPresent bool) {
	for errorChain := err; errorChain != nil; errorChain = errors.Unwrap(errorChain) {
		if errChainGood, ok := errorChain.(ErrorWithData_any); ok {
			return errChainGood.GetParameter(parameterName)
		}
	}
	return nil, false
}

// HasData checks whether the error contains enough parameters of correct types to create an instance of StructType.
func HasData[StructType any](err error) bool {
	_, wrongData := makeStructFromMap[StructType](GetData_map(err))
	return wrongData == nil
}

// GetData_struct obtains the parameters contained in err in the form of a struct of type StructType.
//
// The second return value is false if err does not contain the required parameters.
func GetData_struct[StructType any](err error) (ret StructType, ok bool) {
	ret, wrongData := makeStructFromMap[StructType](GetData_map(err))
	ok = wrongData == nil
	return
}

// CheckParameterForStruct panics if StructType has no exported field of the given name.
// This is intended as a canary for error messages that refer to fields by name.
func CheckParameterForStruct[StructType any](parameterName string) {
	structType := reflect.TypeOf((*StructType)(nil)).Elem()
	if structType.Kind() != reflect.Struct {
		panic(ErrorPrefix + "CheckParameterForStruct called with non-struct type " + structType.String())
	}
	field, ok := structType.FieldByName(parameterName)
	if !ok || !field.IsExported() {
		panic(ErrorPrefix + "struct " + structType.String() + " has no exported field " + parameterName)
	}
}

func fillMapFromStruct[StructType any](data *StructType, params ParamMap) {
	value := reflect.ValueOf(data).Elem()
	if value.Kind() != reflect.Struct {
		panic(ErrorPrefix + "data attached to errors must be a struct, got " + value.Type().String())
	}
	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		if !field.IsExported() {
			panic(ErrorPrefix + "data attached to errors must only have exported fields, " + field.Name + " is not")
		}
		params[field.Name] = value.Field(i).Interface()
	}
}

func makeStructFromMap[StructType any](params ParamMap) (ret StructType, err error) {
	value := reflect.ValueOf(&ret).Elem()
	if value.Kind() != reflect.Struct {
		panic(ErrorPrefix + "requested data of non-struct type " + value.Type().String())
	}
	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		param, ok := params[field.Name]
		if !ok {
			err = fmt.Errorf(ErrorPrefix+"parameter %v missing", field.Name)
			return
		}
		if param == nil {
			// nil parameters are only valid for types that have nil as zero value; we keep the zero value
			switch field.Type.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
				continue
			default:
				err = fmt.Errorf(ErrorPrefix+"parameter %v is nil, which is invalid for type %v", field.Name, field.Type)
				return
			}
		}
		paramValue := reflect.ValueOf(param)
		if !paramValue.Type().AssignableTo(field.Type) {
			err = fmt.Errorf(ErrorPrefix+"parameter %v has type %v, which is not assignable to %v", field.Name, paramValue.Type(), field.Type)
			return
		}
		value.Field(i).Set(paramValue)
	}
	return
}
