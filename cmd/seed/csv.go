package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
)

// parseUsersCSV lee filas full_name;email;password;role_id. La cabecera es opcional.
// Excel en Windows exporta en Latin-1: si el archivo no es UTF-8 válido se decodifica como ISO-8859-1.
func parseUsersCSV(r io.Reader) ([]dto.CreateUserRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	users := make([]dto.CreateUserRequest, 0, len(records))
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "full_name") {
			continue
		}
		roleID, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, fmt.Errorf("csv: línea %d: role_id %q inválido", i+1, rec[3])
		}
		users = append(users, dto.CreateUserRequest{
			FullName: strings.TrimSpace(rec[0]),
			Email:    strings.TrimSpace(rec[1]),
			Password: rec[2],
			RoleID:   roleID,
		})
	}
	return users, nil
}
