package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const peopleCSV = `Elon Musk, 45, Tesla
Mark Zuckerberg, 32, Facebook
Martha Stewart, 74, MSL`

func TestParseCSV(t *testing.T) {
	records := ParseCSV(peopleCSV)

	require.Equal(t, []Record{
		{"Elon Musk", "45", "Tesla"},
		{"Mark Zuckerberg", "32", "Facebook"},
		{"Martha Stewart", "74", "MSL"},
	}, records)
}

func TestParseCSV_SkipsBlankLinesAndCRLF(t *testing.T) {
	records := ParseCSV("Avi Flombaum, 31, Flatiron School\r\n\r\n   \nPayal Kadakia, 30, ClassPass\n")

	require.Equal(t, []Record{
		{"Avi Flombaum", "31", "Flatiron School"},
		{"Payal Kadakia", "30", "ClassPass"},
	}, records)
}

func TestParseCSV_Empty(t *testing.T) {
	require.Empty(t, ParseCSV(""))
}

func TestParseCSV_NoQuoting(t *testing.T) {
	records := ParseCSV(`"Smith, John", 40, Acme`)

	require.Equal(t, []Record{{`"Smith`, `John"`, "40", "Acme"}}, records)
}

func TestParsePeopleCSV(t *testing.T) {
	rows, err := ParsePeopleCSV(peopleCSV)

	require.NoError(t, err)
	require.Equal(t, []PersonRow{
		{Name: "Elon Musk", Age: "45", Company: "Tesla"},
		{Name: "Mark Zuckerberg", Age: "32", Company: "Facebook"},
		{Name: "Martha Stewart", Age: "74", Company: "MSL"},
	}, rows)
}

func TestParsePeopleCSV_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		line string
	}{
		{"too few columns", "Elon Musk, 45", "line 1"},
		{"too many columns", "Elon Musk, 45, Tesla\nMark, 32, Facebook, Meta", "line 2"},
		{"wrong separator", "Elon Musk,45,Tesla", "line 1"},
		{"line number counts blanks", "\n\nElon Musk", "line 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParsePeopleCSV(tt.data)
			require.ErrorIs(t, err, ErrMalformedRow)
			require.ErrorContains(t, err, tt.line)
			require.Nil(t, rows)
		})
	}
}

func TestSplitLines_NumbersCountSkippedLines(t *testing.T) {
	lines := splitLines("\r\nAvi, 31, Flatiron\n  \nPayal, 30, ClassPass\r\n")

	require.Equal(t, []line{
		{number: 2, record: Record{"Avi", "31", "Flatiron"}},
		{number: 4, record: Record{"Payal", "30", "ClassPass"}},
	}, lines)
}

func TestParsePeopleCSV_AgreesWithParseCSV(t *testing.T) {
	data := "Avi Flombaum, 31, Flatiron School\r\n\r\n   \nPayal Kadakia, 30, ClassPass\n"

	records := ParseCSV(data)
	rows, err := ParsePeopleCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, len(records))
	for i, r := range records {
		require.Equal(t, r[0], rows[i].Name)
	}
}
