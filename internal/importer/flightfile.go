package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// FlightTargets is a parsed target file: a flight count, a step limit and
// one target altitude per flight.
type FlightTargets struct {
	Count     int
	TimeLimit int
	Targets   []int
	Errors    []string
	Warnings  []string
}

// FlightSequences is a parsed replay file: a flight count followed by one
// line of velocities or accelerations per flight.
type FlightSequences struct {
	Count     int
	Sequences [][]int
	Errors    []string
	Warnings  []string
}

func ImportFlightTargets(path string) FlightTargets {
	f, err := os.Open(path)
	if err != nil {
		return FlightTargets{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()
	return ImportFlightTargetsFromReader(f)
}

func ImportFlightTargetsFromReader(r io.Reader) FlightTargets {
	result := FlightTargets{}

	lines, err := readFields(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read file: %v", err))
		return result
	}
	if len(lines) < 2 {
		result.Errors = append(result.Errors, "Expected flight count and time limit lines")
		return result
	}

	count, err := strconv.Atoi(lines[0].fields[0])
	if err != nil || count < 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Invalid flight count '%s'", lines[0].num, lines[0].fields[0]))
		return result
	}
	result.Count = count

	limit, err := strconv.Atoi(lines[1].fields[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Invalid time limit '%s'", lines[1].num, lines[1].fields[0]))
		return result
	}
	result.TimeLimit = limit

	for _, l := range lines[2:] {
		target, err := strconv.Atoi(l.fields[0])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Invalid target '%s'", l.num, l.fields[0]))
			continue
		}
		result.Targets = append(result.Targets, target)
	}

	if count != len(lines)-2 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Header declares %d flights, file has %d", count, len(lines)-2))
	}
	return result
}

func ImportFlightSequences(path string) FlightSequences {
	f, err := os.Open(path)
	if err != nil {
		return FlightSequences{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()
	return ImportFlightSequencesFromReader(f)
}

func ImportFlightSequencesFromReader(r io.Reader) FlightSequences {
	result := FlightSequences{}

	lines, err := readFields(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read file: %v", err))
		return result
	}
	if len(lines) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	count, err := strconv.Atoi(lines[0].fields[0])
	if err != nil || count < 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Invalid flight count '%s'", lines[0].num, lines[0].fields[0]))
		return result
	}
	result.Count = count

nextLine:
	for _, l := range lines[1:] {
		seq := make([]int, 0, len(l.fields))
		for _, s := range l.fields {
			n, err := strconv.Atoi(s)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Invalid number '%s'", l.num, s))
				continue nextLine
			}
			seq = append(seq, n)
		}
		result.Sequences = append(result.Sequences, seq)
	}

	if count != len(lines)-1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Header declares %d flights, file has %d", count, len(lines)-1))
	}
	return result
}
