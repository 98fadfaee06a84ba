// Package tertest is a deliberately simple probe library. Its surfaces are
// meant to be resolved by name and intercepted by an external
// dynamic-instrumentation tool; none of them do anything interesting on
// their own.
package tertest

// OutSentinel is the constant Echo writes into its output parameter.
const OutSentinel int32 = 500

const staticString = "Original static string"

// GlobalCounter is never read or written by any probe surface. It exists so
// an instrumentation tool has a data symbol to target.
var GlobalCounter int32 = 100

// Add returns the sum of a and b.
func Add(a, b int32) int32 {
	return a + b
}

// TestData is the record passed by reference into MutateData.
type TestData struct {
	ID    int32
	Value float64
}

// MutateData increments the record's ID and doubles its Value. A nil record
// is skipped silently.
func MutateData(data *TestData) {
	if data == nil {
		return
	}
	data.ID++
	data.Value *= 2.0
}

// Echo returns input unchanged. If out is non-nil, OutSentinel is written
// through it; a nil out is skipped silently.
func Echo(input string, out *int32) string {
	if out != nil {
		*out = OutSentinel
	}
	return input
}

// TestObject holds one value fixed at construction.
type TestObject struct {
	value int32
}

// NewTestObject creates a TestObject storing initial.
func NewTestObject(initial int32) *TestObject {
	return &TestObject{value: initial}
}

// InstanceMethod returns the stored value multiplied by multiplier.
func (object *TestObject) InstanceMethod(multiplier int32) int32 {
	return object.value * multiplier
}

// StaticString returns a fixed constant string.
func StaticString() string {
	return staticString
}
