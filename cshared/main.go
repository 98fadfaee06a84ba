// The c-shared build of the probe library. Exports the five probe surfaces
// and the initialize entry point under fixed C names so a host
// process can resolve them by foreign-function lookup:
//
//	go build -buildmode=c-shared -o libtertest.so ./cshared
package main

/*
#include <stdint.h>

typedef struct {
	int32_t id;
	double  value;
} test_data_t;
*/
import "C"

import (
	"github.com/skiy/tertest"
)

//export test_simple_function
func test_simple_function(a, b C.int32_t) C.int32_t {
	return C.int32_t(tertest.Add(int32(a), int32(b)))
}

//export test_struct_by_pointer
func test_struct_by_pointer(data *C.test_data_t) {
	if data == nil {
		return
	}
	record := tertest.TestData{ID: int32(data.id), Value: float64(data.value)}
	tertest.MutateData(&record)
	data.id = C.int32_t(record.ID)
	data.value = C.double(record.Value)
}

//export test_pointer_args
func test_pointer_args(input *C.char, out *C.int32_t) *C.char {
	var (
		sentinel    int32
		sentinelPtr *int32
	)
	if out != nil {
		sentinelPtr = &sentinel
	}

	goInput := ""
	if input != nil {
		goInput = C.GoString(input)
	}
	_ = tertest.Echo(goInput, sentinelPtr)

	if out != nil {
		*out = C.int32_t(sentinel)
	}
	// The caller's pointer is returned unchanged.
	return input
}

//export test_instance_method
func test_instance_method(initial, multiplier C.int32_t) C.int32_t {
	object := tertest.NewTestObject(int32(initial))
	return C.int32_t(object.InstanceMethod(int32(multiplier)))
}

//export test_static_method
func test_static_method() *C.char {
	// C.CString allocates with malloc; the constant is tiny and the probe
	// is disposable, so the leak is accepted.
	return C.CString(tertest.StaticString())
}

//export initialize
func initialize() {
	tertest.Initialize()
}

func main() {}
