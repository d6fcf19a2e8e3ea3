package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/TablePlan/internal/model"
)

// ImportRoomFile reads a plain room file: the first line holds the room
// count, every following line "width height [target]". A missing target
// means the room's capacity.
func ImportRoomFile(path string) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()
	return ImportRoomsFromReader(f)
}

// ImportRoomsFromReader parses the room file format from r.
func ImportRoomsFromReader(r io.Reader) ImportResult {
	result := ImportResult{}

	lines, err := readFields(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read file: %v", err))
		return result
	}
	if len(lines) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	header := lines[0]
	declared, err := strconv.Atoi(header.fields[0])
	if err != nil || declared < 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Invalid room count '%s'", header.num, header.fields[0]))
		return result
	}

	for _, l := range lines[1:] {
		if len(l.fields) < 2 {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Expected 'width height [target]'", l.num))
			continue
		}
		vals := make([]int, 0, 3)
		bad := ""
		for _, s := range l.fields[:min(3, len(l.fields))] {
			n, err := strconv.Atoi(s)
			if err != nil {
				bad = s
				break
			}
			vals = append(vals, n)
		}
		if bad != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Invalid number '%s'", l.num, bad))
			continue
		}
		if vals[0] <= 0 || vals[1] <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Width and height must be positive", l.num))
			continue
		}
		if len(l.fields) > 3 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: Ignoring extra values", l.num))
		}

		room := model.NewRoom(fmt.Sprintf("Room %d", len(result.Rooms)+1), vals[0], vals[1], 0)
		if len(vals) == 3 {
			if vals[2] < 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Target must not be negative", l.num))
				continue
			}
			room.Target = vals[2]
		} else {
			room.Target = room.Capacity()
		}
		result.Rooms = append(result.Rooms, room)
	}

	if declared != len(lines)-1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Header declares %d rooms, file has %d", declared, len(lines)-1))
	}

	return result
}

type fieldLine struct {
	num    int
	fields []string
}

// readFields splits r into whitespace separated fields per non-blank line.
func readFields(r io.Reader) ([]fieldLine, error) {
	var lines []fieldLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	num := 0
	for sc.Scan() {
		num++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, fieldLine{num: num, fields: fields})
	}
	return lines, sc.Err()
}
