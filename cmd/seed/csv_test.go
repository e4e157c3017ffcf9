package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsersCSV_ConCabecera(t *testing.T) {
	in := "full_name;email;password;role_id\nAna Pérez;ana@x.com;secret1;2\n Luis ; luis@x.com ;secret2;3\n"
	users, err := parseUsersCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "Ana Pérez", users[0].FullName)
	assert.Equal(t, 2, users[0].RoleID)
	assert.Equal(t, "Luis", users[1].FullName)
	assert.Equal(t, "luis@x.com", users[1].Email)
}

func TestParseUsersCSV_Latin1(t *testing.T) {
	// "Muñoz" en ISO-8859-1: ñ = 0xF1
	in := bytes.Join([][]byte{[]byte("Mu"), {0xF1}, []byte("oz;m@x.com;secret1;5\n")}, nil)
	users, err := parseUsersCSV(bytes.NewReader(in))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Muñoz", users[0].FullName)
}

func TestParseUsersCSV_RolInvalido(t *testing.T) {
	_, err := parseUsersCSV(strings.NewReader("Ana;ana@x.com;secret1;admin\n"))
	assert.Error(t, err)

	_, err = parseUsersCSV(strings.NewReader("Ana;ana@x.com;secret1\n"))
	assert.Error(t, err)
}

func TestParseUsersCSV_BOMSinCabecera(t *testing.T) {
	users, err := parseUsersCSV(strings.NewReader("\ufeffAna;a@x.com;secret1;2\n"))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].FullName)
}

func TestParseUsersCSV_BOMConCabecera(t *testing.T) {
	users, err := parseUsersCSV(strings.NewReader("\ufefffull_name;email;password;role_id\nAna;a@x.com;secret1;2\n"))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)
}
