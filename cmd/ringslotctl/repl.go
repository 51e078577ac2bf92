package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/aep/ringslot/pkg/ringslot"
	"github.com/aep/ringslot/pkg/store"
)

// REPL is the interactive command loop driving one open partition.
type REPL struct {
	store *store.File
	h     *ringslot.Handle
	liner *liner.State
}

// historyFile returns the path to the command history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".ringslotctl_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("ringslotctl (stride=%d, slots=%d, little_endian=%v, full_scan=%v)\n",
		r.h.Stride(), r.h.SlotCount(), r.h.LittleEndian(), r.h.FullScan())
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("ringslot> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "write", "put":
			r.cmdWrite(args)

		case "read", "get":
			r.cmdRead()

		case "list", "ls":
			r.cmdList(args)

		case "listslots", "lsall":
			r.cmdListSlots(args)

		case "info", "stat":
			r.cmdInfo()

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"write", "put", "read", "get",
		"list", "ls", "listslots", "lsall",
		"info", "stat", "clear", "cls",
		"help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  write <text>          Write a new generation; text may be hex or plain")
	fmt.Println("  read                  Show the current head's payload")
	fmt.Println("  list [limit]          Walk newest to oldest from the head")
	fmt.Println("  listslots             Walk every slot in physical order, erased included")
	fmt.Println("  info                  Show partition layout and head state")
	fmt.Println("  help                  Show this help")
	fmt.Println("  exit / quit / q       Exit")
}

func (r *REPL) cmdWrite(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: write <text>")
		return
	}

	payload := parsePayload(strings.Join(args, " "))

	err := r.h.Write(context.Background(), r.store, payload)
	if err != nil {
		fmt.Printf("write failed: %v\n", err)
		return
	}

	fmt.Printf("wrote version=%d offset=%d (%d bytes)\n", r.h.Version(), r.h.Offset(), len(payload))
}

func (r *REPL) cmdRead() {
	payload, ok, err := r.h.Read(context.Background(), r.store)
	if err != nil {
		fmt.Printf("read failed: %v\n", err)
		return
	}

	if !ok {
		fmt.Println("(empty: no generation written yet)")
		return
	}

	fmt.Printf("version=%d offset=%d\n", r.h.Version(), r.h.Offset())
	fmt.Println(formatPayload(payload))
}

func (r *REPL) cmdList(args []string) {
	limit := -1

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("usage: list [limit]")
			return
		}

		limit = n
	}

	count := 0

	for rec, err := range r.h.List(context.Background(), r.store) {
		if err != nil {
			fmt.Printf("list failed: %v\n", err)
			return
		}

		fmt.Printf("  [%d] version=%d %s\n", count, rec.Version, formatPayload(rec.Payload))

		count++

		if limit >= 0 && count >= limit {
			break
		}
	}

	fmt.Printf("(%d entries)\n", count)
}

func (r *REPL) cmdListSlots(args []string) {
	opts := ringslot.Options{
		BaseAddress:  r.h.BaseAddress(),
		Stride:       r.h.Stride(),
		LittleEndian: r.h.LittleEndian(),
		FullScan:     r.h.FullScan(),
	}

	i := 0

	for rec, err := range ringslot.ListSlots(context.Background(), r.store, r.h.ByteLength(), opts) {
		if err != nil {
			fmt.Printf("listslots failed: %v\n", err)
			return
		}

		state := "live"
		if rec.Version == ringslot.HeaderInitValue32 {
			state = "erased"
		}

		fmt.Printf("  slot %d: version=%d (%s) %s\n", i, rec.Version, state, formatPayload(rec.Payload))
		i++
	}
}

func (r *REPL) cmdInfo() {
	s := r.h.Stat()

	fmt.Printf("base address:  %d\n", s.BaseAddress)
	fmt.Printf("byte length:   %d\n", s.ByteLength)
	fmt.Printf("stride:        %d\n", s.Stride)
	fmt.Printf("slot count:    %d\n", s.SlotCount)
	fmt.Printf("empty:         %v\n", s.Empty)
	fmt.Printf("version:       %d\n", s.Version)
	fmt.Printf("offset:        %d\n", s.Offset)
}

// parsePayload tries hex first, falling back to plain text, the same
// heuristic the teacher's REPL uses for keys.
func parsePayload(s string) []byte {
	if raw, err := hex.DecodeString(s); err == nil && len(s)%2 == 0 {
		return raw
	}

	return []byte(s)
}

// formatPayload renders a payload as text if printable, otherwise hex.
func formatPayload(payload []byte) string {
	printable := true

	for _, b := range payload {
		if b != 0 && (b < 32 || b > 126) {
			printable = false
			break
		}
	}

	if printable {
		end := len(payload)
		for end > 0 && payload[end-1] == 0 {
			end--
		}

		return fmt.Sprintf("%q", string(payload[:end]))
	}

	return hex.EncodeToString(payload)
}
