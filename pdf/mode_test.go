package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfpress/pdf"
)

func TestParseMode_AllPresets(t *testing.T) {
	tokens := map[string]pdf.Mode{
		"screen":   pdf.ModeScreen,
		"ebook":    pdf.ModeEbook,
		"prepress": pdf.ModePrepress,
		"print":    pdf.ModePrint,
	}

	for token, want := range tokens {
		got, err := pdf.ParseMode(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got)
		assert.Equal(t, token, got.String())
		assert.NotEmpty(t, got.Description())
	}
	assert.Len(t, pdf.Modes(), len(tokens))
}

func TestParseMode_Invalid(t *testing.T) {
	for _, token := range []string{"ultra", "", "Ebook", "SCREEN", " print"} {
		_, err := pdf.ParseMode(token)
		require.Error(t, err, "token %q", token)
		assert.True(t, pdf.IsUsage(err))
	}
}

func TestMode_SetImplementsFlagValue(t *testing.T) {
	m := pdf.DefaultMode
	assert.Equal(t, "mode", m.Type())

	require.NoError(t, m.Set("prepress"))
	assert.Equal(t, pdf.ModePrepress, m)

	err := m.Set("ultra")
	require.Error(t, err)
	assert.Equal(t, pdf.ModePrepress, m, "failed Set must not change the value")
}

func TestMode_UnknownValue(t *testing.T) {
	var m pdf.Mode
	assert.False(t, m.Valid())
	assert.Equal(t, "Mode(0)", m.String())
	assert.Empty(t, m.Description())
	assert.Equal(t, "screen|ebook|prepress|print", pdf.ModeTokens())
}
