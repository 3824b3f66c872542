package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Belphemur/StudentService/internal/models"
)

func TestWriteStudents_ThenRead(t *testing.T) {
	students := []models.Student{
		{ID: 11, Name: "Mr. Nice"},
		{ID: 12, Name: "Narco"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStudents(&buf, students))

	got, err := ReadStudents(&buf)
	require.NoError(t, err)
	assert.Equal(t, students, got)
}

func TestWriteStudents_SheetLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudents(&buf, []models.Student{{ID: 7, Name: "Ann"}}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID", "Name"}, {"7", "Ann"}}, rows)
}

func TestReadStudents_SkipsRowsWithoutName(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"ID", "Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"", "New Student"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{5}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"abc", "Bad Id"}))

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := ReadStudents(&buf)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{
		{ID: 0, Name: "New Student"},
		{ID: 0, Name: "Bad Id"},
	}, got)
}

func TestReadStudents_NotAWorkbook(t *testing.T) {
	_, err := ReadStudents(bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}
