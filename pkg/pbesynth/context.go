package pbesynth

// Context is the column-organised input example table plus the target
// output vector (spec §6 external interface). Inputs[i] is the Value of
// input variable i (one slot per example row); Target is the expected
// output Value the whole search is driving towards.
type Context struct {
	Inputs []Value
	Target Value
}

// NumExamples returns the number of example rows, taken from Target's
// length (every Input and the Target must agree on row count).
func (c *Context) NumExamples() int {
	return c.Target.Len()
}

// Column returns the Value bound to input variable i.
func (c *Context) Column(i int) Value {
	return c.Inputs[i]
}
