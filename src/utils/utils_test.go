package utils

import (
	"acelera/src/models"
	"acelera/src/types"
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ledger() []models.Transaction {
	b1 := "b1"
	day := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{ID: "t1", Type: types.TRANSACTION_INCOME, Amount: decimal.NewFromInt(150), Description: "Alice Cooper - Flash", Category: "Serviço", Date: day, BookingID: &b1},
		{ID: "t2", Type: types.TRANSACTION_EXPENSE, Amount: decimal.RequireFromString("49.9"), Description: "Tinta, preta", Category: "Materiais", Date: day.AddDate(0, 0, -1)},
	}
}

func TestLedgerCSV(t *testing.T) {
	out, err := LedgerCSV(ledger(), time.UTC)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"date", "description", "category", "type", "amount", "booking_id"}, rows[0])
	assert.Equal(t, []string{"2024-06-10", "Alice Cooper - Flash", "Serviço", "INCOME", "150.00", "b1"}, rows[1])
	assert.Equal(t, []string{"2024-06-09", "Tinta, preta", "Materiais", "EXPENSE", "49.90", ""}, rows[2])

	out, err = LedgerCSV(nil, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "date,description,category,type,amount,booking_id\n", string(out))
}

func TestLedgerXLSX(t *testing.T) {
	out, err := LedgerXLSX(ledger(), time.UTC)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Livro Caixa", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper - Flash", v)
	v, _ = f.GetCellValue("Livro Caixa", "E3")
	assert.Equal(t, "-49.9", v)
	formula, _ := f.GetCellFormula("Livro Caixa", "E4")
	assert.Equal(t, "SUM(E2:E3)", formula)
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "acelera-tattoo-livro-caixa-2024-06-10.csv", ExportFileName("Acelera Tattoo", at, "csv"))
}

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT(&models.User{ID: "u1", Name: "Artista", Email: "artista@aceleratattoo.com", Role: types.ROLE_TATTOOIST})
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "artista@aceleratattoo.com", claims.Email)
	assert.Equal(t, types.ROLE_TATTOOIST, claims.Role)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)

	_, err = ParseJWT("garbage")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	claims := types.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseJWT(token)
	assert.Error(t, err)
}
