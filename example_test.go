package smalliter_test

import (
	"fmt"

	"go.llib.dev/smalliter"
)

func ExampleFrom() {
	itr := smalliter.From([]int{1, 2, 3})
	defer itr.Close()

	for v := range itr.Seq() {
		fmt.Println(v)
	}
	// Output:
	// 1
	// 2
	// 3
}

func ExampleIter_Next() {
	itr := smalliter.From([]string{"foo", "bar"})
	defer itr.Close()

	for {
		v, ok := itr.Next()
		if !ok {
			break
		}
		fmt.Println(v, itr.Len())
	}
	// Output:
	// foo 1
	// bar 0
}

func ExampleIter_AsSlice() {
	itr := smalliter.From([]int{1, 2, 3})
	defer itr.Close()

	itr.Next()
	fmt.Println(itr.AsSlice())
	// Output: [2 3]
}

func ExampleIter_Collect() {
	itr := smalliter.From([]int{1, 2, 3})

	vs, _ := itr.Collect()
	fmt.Println(vs)
	// Output: [1 2 3]
}

func ExampleIter_Pull() {
	pi := smalliter.From([]int{42}).Pull()
	defer pi.Close()

	for pi.Next() {
		fmt.Println(pi.Value())
	}
	// Output: 42
}
