package rpq

import (
	"bytes"
	"io/ioutil"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestLogLevels(t *testing.T) {
	defer func() {
		InitLoggers(1)
		SetLogOutput(ioutil.Discard)
	}()

	var buf bytes.Buffer
	InitLoggers(2)
	SetLogOutput(&buf)
	Log(1, "first %d", 1)
	Log(2, "second")
	Log(3, "third")
	Log(4, "fourth")

	out := buf.String()
	assert.Assert(t, strings.Contains(out, "level=error msg=\"first 1\""), out)
	assert.Assert(t, strings.Contains(out, "level=info msg=second"), out)
	assert.Assert(t, !strings.Contains(out, "third"), out)
	assert.Assert(t, !strings.Contains(out, "fourth"), out)

	buf.Reset()
	InitLoggers(4)
	SetLogOutput(&buf)
	Log(4, "fourth")
	assert.Assert(t, strings.Contains(buf.String(), "level=trace msg=fourth"), buf.String())
}
