package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareURL(t *testing.T) {

	url := ShareURL("*Proposta de Renegociação*\n\nR$800,00")

	assert.True(t, strings.HasPrefix(url, "https://api.whatsapp.com/send?text="))
	assert.NotContains(t, url, " ")
	assert.NotContains(t, url, "\n")
	assert.Contains(t, url, "R%24800%2C00")
}
