//go:build ignore

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/muurk/vizconnect/internal/protocol"
)

// Statistics tracks parsing results
type Statistics struct {
	TotalMessages  int
	TotalFiles     int
	ParseSuccess   int
	ParseFailure   int
	Ops            map[string]int
	FailedMessages []FailedMessage
}

// FailedMessage stores information about parsing failures
type FailedMessage struct {
	File       string
	LineNumber int
	Payload    string
	Error      string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: validate_messages <directory-or-file>")
		fmt.Println("Each line of a .jsonl file is one text frame captured from a Foxglove WebSocket server.")
		fmt.Println("Example: go run tools/validate_messages.go captures/")
		os.Exit(1)
	}

	path := os.Args[1]
	stats := Statistics{Ops: make(map[string]int)}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error accessing path: %v\n", err)
		os.Exit(1)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.jsonl"))
		if err != nil {
			fmt.Printf("Error finding JSONL files: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Printf("No JSONL files found in %s\n", path)
			os.Exit(1)
		}
	}

	fmt.Printf("=== Foxglove message validator ===\n")
	fmt.Printf("Files to process: %d\n\n", len(files))

	for _, file := range files {
		processFile(file, &stats)
	}

	printStatistics(&stats)
	if stats.ParseFailure > 0 {
		os.Exit(1)
	}
}

func processFile(filename string, stats *Statistics) {
	stats.TotalFiles++

	f, err := os.Open(filename)
	if err != nil {
		fmt.Printf("Error reading file %s: %v\n", filename, err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		stats.TotalMessages++

		msg, err := protocol.ParseMessage(line)
		if err != nil {
			stats.ParseFailure++
			stats.FailedMessages = append(stats.FailedMessages, FailedMessage{
				File:       filename,
				LineNumber: lineNum,
				Payload:    string(line),
				Error:      err.Error(),
			})
			continue
		}

		stats.ParseSuccess++
		stats.Ops[msg.MessageOp()]++
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("Error scanning %s: %v\n", filename, err)
	}
}

func printStatistics(stats *Statistics) {
	fmt.Printf("\n========================================\n")
	fmt.Printf("VALIDATION RESULTS\n")
	fmt.Printf("========================================\n\n")

	fmt.Printf("Files Processed:    %d\n", stats.TotalFiles)
	fmt.Printf("Total Messages:     %d\n", stats.TotalMessages)
	if stats.TotalMessages == 0 {
		return
	}
	fmt.Printf("Parse Success:      %d (%.2f%%)\n", stats.ParseSuccess,
		float64(stats.ParseSuccess)/float64(stats.TotalMessages)*100)
	fmt.Printf("Parse Failure:      %d (%.2f%%)\n", stats.ParseFailure,
		float64(stats.ParseFailure)/float64(stats.TotalMessages)*100)

	fmt.Printf("\n----------------------------------------\n")
	fmt.Printf("OP DISTRIBUTION\n")
	fmt.Printf("----------------------------------------\n")
	ops := make([]string, 0, len(stats.Ops))
	for op := range stats.Ops {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		fmt.Printf("%-12s %d\n", op, stats.Ops[op])
	}

	if len(stats.FailedMessages) > 0 {
		fmt.Printf("\n----------------------------------------\n")
		fmt.Printf("PARSE FAILURES (%d total)\n", len(stats.FailedMessages))
		fmt.Printf("----------------------------------------\n")

		maxShow := 10
		if len(stats.FailedMessages) > maxShow {
			fmt.Printf("(Showing first %d of %d failures)\n", maxShow, len(stats.FailedMessages))
		}
		for i, failed := range stats.FailedMessages {
			if i >= maxShow {
				break
			}
			fmt.Printf("\nFailure #%d:\n", i+1)
			fmt.Printf("  File: %s (line %d)\n", failed.File, failed.LineNumber)
			fmt.Printf("  Error: %s\n", failed.Error)
			preview := failed.Payload
			if len(preview) > 80 {
				preview = preview[:80] + "..."
			}
			fmt.Printf("  Payload: %s\n", preview)
		}
	}
}
