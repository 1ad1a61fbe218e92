// Package testing provides fixtures and helpers for arbor tests.
package testing

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/zoobzio/arbor"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump renders v for test failure output. Ordered maps print their keys in
// insertion order.
func Dump(v any) string {
	if n, ok := v.(arbor.Node); ok {
		v = n.Interface()
	}
	return dumper.Sdump(v)
}

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) arbor.Encryptor {
	tb.Helper()
	enc, err := arbor.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// Person is the main subject of the fixture family.
type Person struct {
	Name string `tree:"name"`
	Age  int    `tree:"age"`
	Dogs []Dog  `tree:"dogs"`
	Cats []Cat  `tree:"cats"`
}

// Dog is a pet with a fractional age.
type Dog struct {
	Name string  `tree:"name"`
	Age  float64 `tree:"age"`
}

// Cat is a pet.
type Cat struct {
	Name string `tree:"name"`
	Age  int    `tree:"age"`
}

// Owner holds a single pet rather than a slice of them.
type Owner struct {
	Name string `tree:"name"`
	Age  int    `tree:"age"`
	Dog  *Dog   `tree:"dog"`
}

// Parents is a two-field struct used as a sequence: iterating it yields
// Mom then Dad. The fields hold anything, including other Parents.
type Parents struct {
	Mom any `tree:"mom"`
	Dad any `tree:"dad"`
}

// Account carries values suited to the transform args.
type Account struct {
	ID       string `tree:"id"`
	Email    string `tree:"email"`
	Password string `tree:"password"`
	SSN      string `tree:"ssn"`
	Note     string `tree:"note"`
}

// Kennel returns a person with three dogs and one cat.
func Kennel() Person {
	return Person{
		Name: "Me",
		Age:  26,
		Dogs: []Dog{
			{Name: "Dow", Age: 11},
			{Name: "Katrin", Age: 2},
			{Name: "Indiana", Age: 3},
		},
		Cats: []Cat{
			{Name: "Baloon", Age: 4},
		},
	}
}

// Family returns Parents holding two people.
func Family() Parents {
	return Parents{
		Mom: Person{Name: "Dad", Age: 50},
		Dad: Person{Name: "Mom", Age: 46},
	}
}

// People returns n people with one dog each.
func People(n int) []Person {
	out := make([]Person, n)
	for i := range out {
		out[i] = Person{
			Name: "Person",
			Age:  i,
			Dogs: []Dog{{Name: "Rex", Age: float64(i % 15)}},
		}
	}
	return out
}
