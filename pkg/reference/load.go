package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Load picks a loader from the path: a directory of CSV files, an .xlsx
// workbook or a YAML document. An empty path yields the built-in tables.
func Load(path string) (*Data, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	var d *Data
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case st.IsDir():
		d, err = LoadDir(path)
	case ext == ".xlsx":
		d, err = LoadWorkbook(path)
	case ext == ".yaml" || ext == ".yml":
		d, err = LoadYAML(path)
	default:
		return nil, fmt.Errorf("reference: unsupported file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reference %s: %w", path, err)
	}
	return d, nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
