package textdata

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"

	"geoinv/domain/survey"
	"geoinv/internal/errors"
)

// Loader reads a whitespace-delimited station file with two columns:
// station position and measured anomaly. Lines starting with '#' and blank
// lines are ignored; any other malformed row aborts the load.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given file path
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the station file once
func (l *Loader) Load(ctx context.Context) (*survey.Observations, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening station file %s", l.path)
	}
	defer f.Close()

	var x, d []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.ParseError(
				"station file " + l.path + " line " + strconv.Itoa(lineNo) + ": expected 2 columns, got " + strconv.Itoa(len(fields)))
		}

		pos, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.ParseError(
				"station file " + l.path + " line " + strconv.Itoa(lineNo) + ": bad position value " + fields[0])
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.ParseError(
				"station file " + l.path + " line " + strconv.Itoa(lineNo) + ": bad anomaly value " + fields[1])
		}

		x = append(x, pos)
		d = append(d, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading station file %s", l.path)
	}
	if len(x) == 0 {
		return nil, errors.ParseError("station file " + l.path + " contains no data rows")
	}

	return survey.New(x, d)
}
