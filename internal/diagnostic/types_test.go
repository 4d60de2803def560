package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticsCollect(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.Empty())

	d.AddInfo(CodeFieldIgnored, "ignored by tag", "store.Node", "Secret")
	d.AddWarning(CodeRecursionTruncated, "type already on path", "store.Node", "Next_Next")
	d.AddWarning(CodeUnsupportedType, "slices are not supported", "store.Node", "Tags")

	assert.False(t, d.Empty())
	assert.Len(t, d.Warnings, 2)
	assert.Len(t, d.WithCode(CodeRecursionTruncated), 1)

	all := d.All()
	assert.Len(t, all, 3)
	assert.Equal(t, DiagnosticWarning, all[0].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)
}

func TestDiagnosticsValueReceivers(t *testing.T) {
	build := func() Diagnostics {
		var d Diagnostics
		d.AddWarning(CodeEmptyStruct, "no exported fields", "store.Order", "Blob")
		return d
	}

	assert.Len(t, build().All(), 1)
	assert.Len(t, build().WithCode(CodeEmptyStruct), 1)
	assert.False(t, build().Empty())
}

func TestDiagnosticString(t *testing.T) {
	diag := Diagnostic{Code: CodeDuplicateKey, Message: "key emitted twice", Type: "store.Order", Key: "Customer_ID"}
	assert.Equal(t, "[store.Order] Customer_ID: [duplicate-key] key emitted twice", diag.String())

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
