package nametab_test

import (
	"fmt"

	"github.com/nametab/nametab"
)

func Example() {
	tab := nametab.New()
	defer tab.Close()

	// Register names known not to exist yet.
	joint1, _ := tab.Add("joint_01a")
	tab.Add("joint_02c")
	tab.Add("sfx/charge/heavy_footstep")

	// Lookups are case-insensitive and return the same 8-byte handle.
	found, _ := tab.Find("JOINT_01A")
	fmt.Println(found == joint1)
	fmt.Println(tab.Str(found))

	// FindOrAdd is the safe choice when registration state is unknown.
	a, _ := tab.FindOrAdd("joint_09d")
	b, _ := tab.FindOrAdd("Joint_09D")
	fmt.Println(a == b)

	// Output:
	// true
	// joint_01a
	// true
}
