package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)

	n.NotifySuccess("Company added")
	n.NotifyFailure("Duplicate")

	assert.Equal(t, "✔ Company added\n✖ Duplicate\n", buf.String())
}

func TestMulti(t *testing.T) {
	var a, b bytes.Buffer
	m := Multi{NewWriterNotifier(&a), NewWriterNotifier(&b), NewLogNotifier("test")}

	m.NotifyFailure("No file selected")

	assert.Equal(t, "✖ No file selected\n", a.String())
	assert.Equal(t, a.String(), b.String())
}
