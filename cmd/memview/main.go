package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/memspace"
	"github.com/wippyai/memview/object"
)

func main() {
	var (
		dumps       = flag.String("dump", "", "Dump files to map (path@hexbase, comma-separated)")
		retro       = flag.String("retro", "", "RetroArch host:port for live memory")
		order       = flag.String("order", "le", "Byte order: le or be")
		ptrWidth    = flag.Uint("ptr", 8, "Pointer width in bytes (4 or 8)")
		gamecube    = flag.Bool("gamecube", false, "GameCube/Wii preset (big-endian, 4-byte pointers, valid ranges)")
		addr        = flag.Uint64("addr", 0, "Start address (hex accepted with 0x prefix via -addr=0x...)")
		length      = flag.Uint("len", 256, "Bytes to show in non-interactive mode")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *dumps == "" && *retro == "" {
		fmt.Fprintln(os.Stderr, "Usage: memview -dump ram.bin@0x80000000 [-addr 0x...] [-len n]")
		fmt.Fprintln(os.Stderr, "       memview -retro localhost:55355 -gamecube -i")
		os.Exit(1)
	}

	cfg, err := buildConfig(*order, uint32(*ptrWidth), *gamecube)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	space, closer, err := buildSpace(*dumps, *retro, *gamecube)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer()
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(space, cfg, *addr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(space, cfg, *addr, uint32(*length)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig(order string, ptrWidth uint32, gamecube bool) (memview.Config, error) {
	if gamecube {
		return memview.GameCube(), nil
	}
	cfg := memview.Config{PointerWidth: ptrWidth}
	switch order {
	case "le":
		cfg.ByteOrder = binary.LittleEndian
	case "be":
		cfg.ByteOrder = binary.BigEndian
	default:
		return cfg, fmt.Errorf("unknown byte order %q (want le or be)", order)
	}
	norm, ok := cfg.Normalize()
	if !ok {
		return cfg, fmt.Errorf("pointer width must be 4 or 8, got %d", ptrWidth)
	}
	return norm, nil
}

func buildSpace(dumps, retro string, gamecube bool) (memview.MemorySpace, func(), error) {
	if retro != "" {
		host, portStr, found := strings.Cut(retro, ":")
		if !found {
			return nil, nil, fmt.Errorf("retro address %q: want host:port", retro)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, nil, fmt.Errorf("retro port %q: %w", portStr, err)
		}
		var opts []memspace.RetroOption
		if gamecube {
			opts = append(opts, memspace.WithValidRanges(
				memspace.AddrRange{Start: 0x80000000, End: 0x81800000},
				memspace.AddrRange{Start: 0x90000000, End: 0x94000000},
			))
		}
		ra, err := memspace.Connect(host, port, opts...)
		if err != nil {
			return nil, nil, err
		}
		return ra, func() { ra.Close() }, nil
	}

	fs := memspace.NewFileSpace()
	for _, spec := range strings.Split(dumps, ",") {
		path, baseStr, found := strings.Cut(spec, "@")
		if !found {
			return nil, nil, fmt.Errorf("dump spec %q: want path@hexbase", spec)
		}
		base, err := strconv.ParseUint(strings.TrimPrefix(baseStr, "0x"), 16, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("dump base %q: %w", baseStr, err)
		}
		if err := fs.AddFile(path, base); err != nil {
			return nil, nil, err
		}
	}
	return fs, nil, nil
}

// dump prints a classic hex + ascii listing followed by scalar
// decodings of the first bytes, so a quick look needs no TUI.
func dump(space memview.MemorySpace, cfg memview.Config, addr uint64, length uint32) error {
	data, err := space.Read(addr, length)
	if err != nil {
		return err
	}

	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Printf("%08x  % x  |%s|\n", addr+uint64(row), data[row:end], printable(data[row:end]))
	}

	eng, err := object.NewEngine(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("\nAt 0x%x:\n", addr)
	for _, s := range []ctype.Scalar{ctype.U8, ctype.U16, ctype.U32, ctype.U64, ctype.S32, ctype.F32, ctype.F64} {
		v, err := eng.View(space, addr, s).Get()
		if err != nil {
			continue
		}
		fmt.Printf("  %-4s %v\n", s.String(), v)
	}
	return nil
}

func printable(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 0x20 && b < 0x7f {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
