package lib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(&SendMailInput{
		From:     "agenda@aceleratattoo.com",
		FromName: "Acelera Tattoo",
		To:       []string{"artista@aceleratattoo.com"},
		Subject:  "Agenda de hoje",
		Body:     "10:00 Alice Cooper",
	})
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Agenda de hoje")
	assert.Contains(t, out, "artista@aceleratattoo.com")
	assert.Contains(t, out, "10:00 Alice Cooper")

	_, err = NewMessage(&SendMailInput{From: "not an address", To: []string{"a@b.com"}})
	assert.Error(t, err)
}
