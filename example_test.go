package hjson_test

import (
	"fmt"

	hjson "github.com/hjson-lang/go-hjson"
)

func ExampleUnmarshal() {
	doc := `
name: Alice
age: 30
active: true
`
	v, err := hjson.Unmarshal([]byte(doc))
	if err != nil {
		panic(err)
	}

	name, _ := v.Get("name")
	age, _ := v.Get("age")
	active, _ := v.Get("active")
	fmt.Println(name.Str())
	fmt.Println(age.Int())
	fmt.Println(active.Bool())
	// Output:
	// Alice
	// 30
	// true
}

func ExampleMarshal() {
	m := hjson.NewMap()
	m.Set("name", hjson.NewString("Alice"))
	m.Set("age", hjson.NewInt(30))
	m.Set("active", hjson.NewBool(true))

	out, err := hjson.Marshal(m)
	if err != nil {
		panic(err)
	}

	fmt.Println(out)
	// Output:
	// {
	//   name: Alice
	//   age: 30
	//   active: true
	// }
}

func ExampleMarshal_json() {
	m := hjson.NewMap()
	m.Set("name", hjson.NewString("Alice"))
	m.Set("age", hjson.NewInt(30))

	out, err := hjson.MarshalJSON(m)
	if err != nil {
		panic(err)
	}

	fmt.Println(out)
	// Output:
	// {
	//   "name": "Alice",
	//   "age": 30
	// }
}
