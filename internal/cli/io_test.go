package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IO_Prints_Warnings_Around_Output_When_Output_Follows(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	o := NewIO(&out, &errOut)
	o.Warn("malformed catalog", "restore a backup")
	o.Println("Catalog is empty.")

	assert.Equal(t, "warning: malformed catalog: restore a backup\n", errOut.String())

	o.Finish()

	assert.Equal(t, "Catalog is empty.\n", out.String())
	assert.Equal(t, "warning: malformed catalog: restore a backup\n"+
		"warning: malformed catalog: restore a backup\n", errOut.String())
}

func Test_IO_Prints_Warnings_Once_When_No_Output(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	o := NewIO(&out, &errOut)
	o.Warn("issue", "action")
	o.Finish()

	assert.Empty(t, out.String())
	assert.Equal(t, "warning: issue: action\n", errOut.String())
}

func Test_IO_Finish_Is_Silent_Without_Warnings(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	o := NewIO(&out, &errOut)
	o.Printf("%d books\n", 2)
	o.Finish()

	assert.Equal(t, "2 books\n", out.String())
	assert.Empty(t, errOut.String())
}
