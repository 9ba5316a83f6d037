package services

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"kamau_backend/internal/models"
)

// csvColumns is the fixed export column order.
var csvColumns = []string{
	"First Name", "Last Name", "Email", "Phone",
	"Service", "Area", "Wage", "Status", "Created At",
}

// BuildProfessionalsCSV renders the export CSV. Every field is quoted,
// including the header, and embedded quotes are doubled.
func BuildProfessionalsCSV(items []models.Professional) []byte {
	var buf bytes.Buffer
	writeCSVRow(&buf, csvColumns)
	for _, p := range items {
		writeCSVRow(&buf, []string{
			p.FirstName,
			p.LastName,
			p.Email,
			p.Phone,
			p.ServiceCategory,
			p.ServiceArea,
			strconv.FormatFloat(p.HourlyWage, 'f', -1, 64),
			string(p.VerificationStatus),
			p.CreatedAt.Format(time.RFC3339),
		})
	}
	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
