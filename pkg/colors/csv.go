package colors

import (
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

var csvHeader = []string{"Rank", "Hex Code", "RGB", "Percentage", "Color Name"}

//WriteCSV renders the report rows to CSV in ranked order
func WriteCSV(w io.Writer, result []ColorCluster) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("WriteCSV: could not write header, got '%v'", err)
	}

	for i, c := range result {
		row := []string{
			strconv.Itoa(i + 1),
			c.Hex,
			fmt.Sprintf("(%d, %d, %d)", c.Center[0], c.Center[1], c.Center[2]),
			fmt.Sprintf("%.2f%%", c.Share),
			c.Family,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("WriteCSV: could not write row %d, got '%v'", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

//ExportFilename derives the CSV download name from the uploaded file's name
func ExportFilename(original string) string {
	base := path.Base(original)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" {
		stem = "image"
	}
	return stem + "_colors.csv"
}

//HexList joins the ranked hex codes into the copyable comma-separated form
func HexList(result []ColorCluster) string {
	codes := make([]string, 0, len(result))
	for _, c := range result {
		codes = append(codes, c.Hex)
	}
	return strings.Join(codes, ",")
}
