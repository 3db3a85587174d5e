package status

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosopen/tagconv/pkg/convert"
)

func successResult() convert.Result {
	return convert.Result{
		Success:             true,
		BytesRead:           5,
		BytesWritten:        5,
		EncodingDetected:    "ISO8859-1",
		ConversionPerformed: true,
	}
}

func TestFormatResult(t *testing.T) {
	t.Run("converted_line", func(t *testing.T) {
		line := formatResult("in.txt", "IBM-1047", successResult())
		assert.Contains(t, line, "in.txt")
		assert.Contains(t, line, "ISO8859-1 → IBM-1047")
		assert.Contains(t, line, "5 bytes")
		assert.Contains(t, line, "✓")
	})

	t.Run("copied_line", func(t *testing.T) {
		res := successResult()
		res.ConversionPerformed = false
		res.EncodingDetected = "untagged"

		line := formatResult("in.txt", "IBM-1047", res)
		assert.Contains(t, line, "untagged → IBM-1047")
		assert.Contains(t, line, "•")
	})

	t.Run("failed_line", func(t *testing.T) {
		res := convert.Result{
			EncodingDetected: "ISO8859-1",
			Err:              &convert.Failure{Kind: convert.FailureIO, Message: "no such file"},
		}

		line := formatResult("gone.txt", "IBM-1047", res)
		assert.Contains(t, line, "✗")
		assert.Contains(t, line, "no such file")
	})

	t.Run("replacements_shown", func(t *testing.T) {
		res := successResult()
		res.ReplacedChars = 3

		line := formatResult("in.txt", "IBM-1047", res)
		assert.Contains(t, line, "3 replaced")
	})

	t.Run("tag_failure_marked", func(t *testing.T) {
		res := successResult()
		res.TagErr = &convert.Failure{Kind: convert.FailureTagSet, Message: "read-only"}

		line := formatResult("in.txt", "IBM-1047", res)
		assert.Contains(t, line, "⚠")
	})
}

func TestReporter(t *testing.T) {
	t.Run("report_writes_to_console", func(t *testing.T) {
		var console bytes.Buffer
		r := NewReporter(&console, zerolog.Disabled)

		r.Report("in.txt", "IBM-1047", successResult())

		assert.Contains(t, console.String(), "in.txt")
	})

	t.Run("tag_failure_gets_own_line", func(t *testing.T) {
		var console bytes.Buffer
		r := NewReporter(&console, zerolog.Disabled)

		res := successResult()
		res.TagErr = &convert.Failure{Kind: convert.FailureTagSet, Message: "read-only filesystem"}
		r.Report("in.txt", "IBM-1047", res)

		assert.Contains(t, console.String(), "read-only filesystem")
	})

	t.Run("summary_totals", func(t *testing.T) {
		var console bytes.Buffer
		r := NewReporter(&console, zerolog.Disabled)

		failed := convert.Result{Err: &convert.Failure{Kind: convert.FailureIO, Message: "boom"}}
		r.Summary([]convert.Result{successResult(), successResult(), failed})

		out := console.String()
		assert.Contains(t, out, "2 converted")
		assert.Contains(t, out, "1 failed")
		assert.Contains(t, out, "10 bytes written")
	})

	t.Run("summary_reports_replacements_and_tags", func(t *testing.T) {
		var console bytes.Buffer
		r := NewReporter(&console, zerolog.Disabled)

		res := successResult()
		res.ReplacedChars = 7
		res.TagErr = &convert.Failure{Kind: convert.FailureTagSet, Message: "nope"}
		r.Summary([]convert.Result{res})

		out := console.String()
		require.Contains(t, out, "7 characters replaced")
		assert.Contains(t, out, "1 outputs left untagged")
	})
}
