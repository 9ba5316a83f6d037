package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kamau_backend/internal/models"
)

func TestBuildProfessionalsCSV_ColumnOrder(t *testing.T) {
	created := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	pro := models.Professional{
		FirstName:          "Gita",
		LastName:           "Rai",
		Email:              "gita@test.com",
		Phone:              "9801112233",
		ServiceCategory:    "cleaning",
		ServiceArea:        "pulchowk",
		HourlyWage:         450.5,
		VerificationStatus: models.VerificationStatusVerified,
	}
	pro.CreatedAt = created

	out := string(BuildProfessionalsCSV([]models.Professional{pro}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, `"First Name","Last Name","Email","Phone","Service","Area","Wage","Status","Created At"`, lines[0])
	assert.Equal(t, `"Gita","Rai","gita@test.com","9801112233","cleaning","pulchowk","450.5","verified","2025-03-15T10:30:00Z"`, lines[1])
}

// Fields containing quotes or commas must stay a single CSV cell.
func TestBuildProfessionalsCSV_Escaping(t *testing.T) {
	pro := models.Professional{
		FirstName: `Ram "Lal"`,
		LastName:  "Thapa, Jr",
	}

	out := string(BuildProfessionalsCSV([]models.Professional{pro}))
	assert.Contains(t, out, `"Ram ""Lal""","Thapa, Jr"`)
}

func TestBuildProfessionalsCSV_Empty(t *testing.T) {
	out := string(BuildProfessionalsCSV(nil))
	assert.Equal(t, `"First Name","Last Name","Email","Phone","Service","Area","Wage","Status","Created At"`+"\n", out)
}
