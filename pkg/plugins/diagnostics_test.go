package plugins

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewPluginException tests the fixed diagnostic shape
func TestNewPluginException(t *testing.T) {
	diag := NewPluginException("acme.plugins.TraceBinding", errors.New("boom"))

	assert.Equal(t, PluginExceptionID, diag.ID)
	assert.Equal(t, SeverityError, diag.Severity)
	assert.Equal(t, "Plugin exception thrown from acme.plugins.TraceBinding. Full exception: boom", diag.Message)
}

// TestDiagnosticBag tests append order, copy semantics, and clearing
func TestDiagnosticBag(t *testing.T) {
	bag := NewDiagnosticBag()
	assert.Zero(t, bag.Len())

	bag.Add(NewPluginException("first", errors.New("a")))
	bag.Add(NewPluginException("second", errors.New("b")))

	items := bag.Items()
	require.Len(t, items, 2)
	assert.Contains(t, items[0].Message, "first")
	assert.Contains(t, items[1].Message, "second")

	// Mutating the returned slice must not affect the bag.
	items[0].Message = "clobbered"
	assert.Contains(t, bag.Items()[0].Message, "first")

	bag.Clear()
	assert.Zero(t, bag.Len())
	assert.Empty(t, bag.Items())
}
